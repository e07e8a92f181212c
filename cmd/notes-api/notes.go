package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/drblury/docweaver/query"
	"github.com/drblury/docweaver/responder"
)

const notesCollection = "notes"

var (
	errNoteNotFound  = errors.New("note not found")
	errNoAttachment  = errors.New("note has no attachment")
	errInvalidNoteID = errors.New("note id must be a 24 character hex string")
)

// Note is the document stored in the notes collection.
type Note struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title      string             `bson:"title" json:"title"`
	Body       string             `bson:"body,omitempty" json:"body,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	Attachment []byte             `bson:"attachment,omitempty" json:"-"`
}

type noteInput struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type collectionSource interface {
	Collection(name string) *mongo.Collection
}

type noteAPI struct {
	db   collectionSource
	resp *responder.Responder

	one     *query.Runner[Note]
	all     *query.Runner[[]Note]
	inserts *query.Runner[mongo.InsertOneResult]
	updates *query.Runner[mongo.UpdateResult]
	deletes *query.Runner[mongo.DeleteResult]
}

func newNoteAPI(db collectionSource, resp *responder.Responder, logger *slog.Logger) *noteAPI {
	return &noteAPI{
		db:      db,
		resp:    resp,
		one:     query.New(globalHooks[Note](logger), query.WithLogger(logger)),
		all:     query.New(globalHooks[[]Note](logger), query.WithLogger(logger)),
		inserts: query.New(globalHooks[mongo.InsertOneResult](logger), query.WithLogger(logger)),
		updates: query.New(globalHooks[mongo.UpdateResult](logger), query.WithLogger(logger)),
		deletes: query.New(globalHooks[mongo.DeleteResult](logger), query.WithLogger(logger)),
	}
}

// globalHooks logs every failed note query once, whatever the endpoint.
func globalHooks[T any](logger *slog.Logger) query.Hooks[T] {
	return query.Hooks[T]{
		OnError: func(err error) {
			logger.Error("note query failed", "error", err)
		},
	}
}

func (api *noteAPI) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /notes", api.resp.Handler(api.list))
	mux.Handle("POST /notes", api.resp.Handler(api.create))
	mux.Handle("GET /notes/{id}", api.resp.Handler(api.get))
	mux.Handle("PUT /notes/{id}", api.resp.Handler(api.update))
	mux.Handle("DELETE /notes/{id}", api.resp.Handler(api.remove))
	mux.Handle("GET /notes/{id}/attachment", api.resp.PDFHandler(api.attachment))
	return mux
}

// run executes q and turns the hook outcome into an error for the handler
// pipeline. Not-found is reported as an invalid id so it renders as 404.
func run[T any](ctx context.Context, runner *query.Runner[T], coll *mongo.Collection, q query.QueryFunc[T], onSuccess func(T)) error {
	var outcome error
	err := runner.Run(ctx, query.Invocation[T]{
		Collection: coll,
		Query:      q,
		Hooks: query.Hooks[T]{
			OnSuccess:  onSuccess,
			OnNotFound: func() { outcome = responder.InvalidID(errNoteNotFound) },
			OnError:    func(err error) { outcome = err },
		},
	})
	if err != nil {
		return err
	}
	return outcome
}

func (api *noteAPI) collection() *mongo.Collection {
	return api.db.Collection(notesCollection)
}

func noteID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		return primitive.NilObjectID, responder.InvalidID(errInvalidNoteID)
	}
	return id, nil
}

func (api *noteAPI) list(w http.ResponseWriter, r *http.Request) error {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetProjection(bson.M{"attachment": 0})
	return run(r.Context(), api.all, api.collection(), query.FindAll[Note](bson.M{}, opts), func(notes []Note) {
		api.resp.Success(w, r, responder.KindAll, notes, "")
	})
}

func (api *noteAPI) get(w http.ResponseWriter, r *http.Request) error {
	id, err := noteID(r)
	if err != nil {
		return err
	}
	opts := options.FindOne().SetProjection(bson.M{"attachment": 0})
	return run(r.Context(), api.one, api.collection(), query.FindOne[Note](bson.M{"_id": id}, opts), func(n Note) {
		api.resp.Success(w, r, responder.KindDetail, n, "")
	})
}

func (api *noteAPI) create(w http.ResponseWriter, r *http.Request) error {
	var in noteInput
	if !api.resp.ReadRequestBody(w, r, &in) {
		return nil
	}
	doc := Note{Title: in.Title, Body: in.Body, CreatedAt: time.Now().UTC()}
	return run(r.Context(), api.inserts, api.collection(), query.InsertOne(doc), func(mongo.InsertOneResult) {
		api.resp.Success(w, r, responder.KindCreate, nil, "")
	})
}

func (api *noteAPI) update(w http.ResponseWriter, r *http.Request) error {
	id, err := noteID(r)
	if err != nil {
		return err
	}
	var in noteInput
	if !api.resp.ReadRequestBody(w, r, &in) {
		return nil
	}
	set := bson.M{"$set": bson.M{"title": in.Title, "body": in.Body}}
	return run(r.Context(), api.updates, api.collection(), query.UpdateByID(id, set), func(mongo.UpdateResult) {
		api.resp.Success(w, r, responder.KindUpdate, nil, "")
	})
}

func (api *noteAPI) remove(w http.ResponseWriter, r *http.Request) error {
	id, err := noteID(r)
	if err != nil {
		return err
	}
	return run(r.Context(), api.deletes, api.collection(), query.DeleteOne(bson.M{"_id": id}), func(mongo.DeleteResult) {
		api.resp.Success(w, r, responder.KindDelete, nil, "")
	})
}

func (api *noteAPI) attachment(r *http.Request) ([]byte, error) {
	id, err := noteID(r)
	if err != nil {
		return nil, err
	}
	var body []byte
	opts := options.FindOne().SetProjection(bson.M{"attachment": 1})
	err = run(r.Context(), api.one, api.collection(), query.FindOne[Note](bson.M{"_id": id}, opts), func(n Note) {
		body = n.Attachment
	})
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, responder.InvalidID(errNoAttachment)
	}
	return body, nil
}
