/*
Package observability provides tools for monitoring running simulations.

It includes engine hooks for counting phases and logical steps, capturing
the halt result, and summarizing a run for status endpoints and metrics
adapters.
*/
package observability
