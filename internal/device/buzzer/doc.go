// Package buzzer drives a passive piezo buzzer with PWM on a GPIO line.
package buzzer
