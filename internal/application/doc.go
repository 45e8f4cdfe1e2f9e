// Package application provides application initialization and dependency wiring.
// It combines the resolved configuration, the age calculator, the output
// printer and the logger into a single Run call, keeping the main package
// focused on CLI parsing and exit codes.
package application
