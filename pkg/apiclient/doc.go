// Package apiclient performs single HTTP requests against the DoctorQ REST
// backend or the AI service and returns parsed JSON or a typed *Error.
//
// # Routing
//
// Endpoints are absolute paths on the API host ("/empresas/"). Paths that
// begin with the local prefix (default "/api/") are sent to the
// backend-for-frontend proxy at LocalBaseURL instead, which hides secrets or
// reshapes payloads server side.
//
// # Authentication
//
// Every request resolves its bearer token through the configured
// auth.Provider. An empty token means no Authorization header.
//
// # Responses
//
//   - 2xx: the JSON body is returned (Result.Body) or decoded into out
//   - 204: Result.NoContent reports true; Call returns (nil, nil)
//   - non-2xx: *Error with the status code and, when the body is JSON, the
//     server's message, code and details; otherwise the HTTP status text
//   - transport failures and aborts: *Error with Code "NETWORK_ERROR"
//
// There are no retries and no backoff. Cancellation is through ctx.
//
// # Streaming
//
// Stream and StartStream consume Server-Sent-Events responses from the AI
// service ("data: <json|text>" lines terminated by "data: [DONE]") and report
// through callbacks instead of returning errors.
//
// # Example
//
//	client, err := apiclient.New(&apiclient.Config{
//	  BaseURL:     "https://api.doctorq.app/api/v1",
//	  Credentials: resolver,
//	  Logger:      logger,
//	})
//
//	var empresa models.Empresa
//	err = client.Get(ctx, "/empresas/42/", &empresa)
package apiclient
