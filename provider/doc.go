// Package provider fetches the data shown on the dashboard.
//
// Every source has its own fetch method returning (value, error). Failures are
// reported as *Error values; [Client.Collect] turns them into placeholders so
// a broken source never prevents a refresh.
package provider
