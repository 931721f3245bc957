// Presupuesto
// ===========
// A budget article registry kept in a Redis compatible store (Redis, KeyDB).
//
// Interactive menu:
// -----------------
// $ go run . --redis-host localhost --redis-port 6379
//
// One-shot commands:
// ------------------
// $ go run . articles create --description "Office chairs" --quantity 12 --category Furniture
// $ go run . articles list --json
//
// REST API:
// ---------
// $ go run . serve
// $ curl -X POST -d '{"description":"Office chairs","quantity":"12","category":"Furniture"}' http://localhost:3333/articles
// $ curl http://localhost:3333/articles
// $ curl http://localhost:9999/metrics
//
// Route docs: `go run . serve --routes`
package main

import "github.com/SergeyParamoshkin/presupuesto/cmd"

func main() {
	cmd.Execute()
}
