/*
Package observability turns projection change hooks into Prometheus metrics.

ModelMetrics counts rows inserted and removed per kind, data changes and resets.
Combine fans one set of model hooks out to several observers, so metrics can sit next
to a view or a logger on the same model.
*/
package observability
