// Package doctorq binds the DoctorQ REST and AI endpoints to typed queries
// and mutations.
//
// A Client owns two HTTP clients, one for the REST backend and one for the
// AI service, and a shared read cache:
//
//	client, err := doctorq.New(doctorq.Options{
//		APIURL:      "https://api.doctorq.app/api/v1",
//		Credentials: resolver,
//	})
//	q, err := client.Empresas(doctorq.EmpresaFilters{
//		Pagination: doctorq.Pagination{Page: 1, Size: 20},
//	})
//	res := q.Load(ctx)
//
// Writes do not invalidate reads. After a successful mutation, call Mutate
// on the queries that show the changed data.
package doctorq
