// Package reconciliation runs reconciliation jobs end to end.
//
// A Job names two inputs (local paths or s3://bucket/key objects), the key
// specification and the run options. The Service opens both inputs, runs the
// core/reconcile engine, renders the artifacts through core/report and then,
// depending on the job, writes them under the output prefix, uploads them to
// object storage and exports the report to the SQL database.
//
// Runs are serialized: the service never executes two reconciliations at the
// same time, and identical concurrent jobs share a single execution.
//
// # HTTP Endpoints
//
//   - POST /reconcile : Runs a job and returns the structured report.
package reconciliation
