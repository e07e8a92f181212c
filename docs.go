// Package docweaver bundles small helpers for HTTP services backed by
// MongoDB. Import only the packages you need.
//
// # Packages
//
//   - query: runs one MongoDB operation and routes the outcome to success,
//     not-found, or error hooks, per call and per Runner. Connection wraps the
//     driver client lifecycle.
//   - responder: CRUD success envelopes, invalid_id to 404 error mapping, an
//     error-returning handler adapter, and RFC 9457 problem documents.
//   - router: ServeMux with recovery, OpenAPI validation, CORS, timeouts and
//     request logging.
//   - info: status, health, readiness, version and OpenAPI endpoints.
//   - probe: Mongo and custom readiness checks.
//   - config: YAML settings for the above.
//   - jsonutil: sonic wrappers used for every JSON body.
//
// # Quick Start
//
//	conn := query.NewConnection()
//	if err := conn.Connect(ctx, "mongodb://localhost:27017", "app"); err != nil {
//	    return err
//	}
//	users := query.New(query.Hooks[User]{OnError: logQueryError})
//	resp := responder.NewResponder(responder.WithSubject("User"))
//
//	mux.Handle("GET /users/{id}", resp.Handler(func(w http.ResponseWriter, r *http.Request) error {
//	    var failed error
//	    err := users.Run(r.Context(), query.Invocation[User]{
//	        Collection: conn.Collection("users"),
//	        Query:      query.FindOne[User](bson.M{"name": r.PathValue("id")}),
//	        Hooks: query.Hooks[User]{
//	            OnSuccess:  func(u User) { resp.Success(w, r, responder.KindDetail, u, "") },
//	            OnNotFound: func() { failed = responder.ErrInvalidID },
//	            OnError:    func(err error) { failed = err },
//	        },
//	    })
//	    if err != nil {
//	        return err
//	    }
//	    return failed
//	}))
//
// cmd/notes-api wires every package into a runnable service.
package docweaver
