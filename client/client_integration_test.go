// client_integration_test.go
//go:build integration
// +build integration

package client

import (
	"context"
	"net/http"
	"testing"
)

var c = Client{
	Addr:   "http://localhost:3333",
	Client: http.Client{},
}

func TestPing(t *testing.T) {
	if s, err := c.Ping(context.Background()); err != nil || s != "pong" {
		t.Fail()
	}
}

func TestCreateAndDelete(t *testing.T) {
	ctx := context.Background()

	a, err := c.CreateArticle(ctx, "Office chairs", "12", "Furniture")
	if err != nil {
		t.Fatal(err)
	}

	if err := c.DeleteArticle(ctx, a.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := c.GetArticle(ctx, a.ID); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
