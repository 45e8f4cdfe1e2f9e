// Package calendar models civil dates without time zone or time of day and
// parses them from user supplied strings using a field-order plus separator
// format specifier (for example "YMD-" or "MDY/").
package calendar
