package query_test

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/drblury/docweaver/query"
)

type Note struct {
	Title string `bson:"title"`
}

func ExampleRunner_Run() {
	runner := query.New(query.Hooks[Note]{
		OnError: func(err error) { fmt.Println("global error:", err) },
	})

	findByTitle := func(title string) query.QueryFunc[Note] {
		return func(ctx context.Context, coll *mongo.Collection) (*Note, error) {
			if title == "missing" {
				return nil, mongo.ErrNoDocuments
			}
			return &Note{Title: title}, nil
		}
	}

	coll := new(mongo.Collection)
	for _, title := range []string{"groceries", "missing"} {
		_ = runner.Run(context.Background(), query.Invocation[Note]{
			Collection: coll,
			Query:      findByTitle(title),
			Hooks: query.Hooks[Note]{
				OnSuccess:  func(n Note) { fmt.Println("found", n.Title) },
				OnNotFound: func() { fmt.Println("not found") },
			},
		})
	}

	err := runner.Run(context.Background(), query.Invocation[Note]{Query: findByTitle("x")})
	fmt.Println(err)

	// Output:
	// found groceries
	// not found
	// query: invalid argument: collection is required
}
