// Package testutil provides test doubles for the scoring backend: an
// in-memory HTTP fake served through chi and a testify mock of the gateway.
//
// Example usage:
//
//	backend := testutil.NewBackend(t)
//	backend.Fail(testutil.RouteAnalytics, testutil.Failure{Status: 502})
//	client := gateway.New(gateway.Config{BaseURL: backend.URL()})
package testutil
