/*
Package helper collects small general-purpose functions: value checks,
reflective dot access, SQL snippet generation, a named constant registry
and PRC resident ID card handling.
*/
package helper
