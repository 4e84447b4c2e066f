/*
	Adding to the Connector

	The Connector defines how route handlers reach the todo collection. Each
	method performs one store operation and reports failures as
	gimlet.ErrorResponse values whose status code says what went wrong:
	400 for a malformed identifier or update, 404 for a record that does
	not exist, and 500 for a store fault. Handlers pass these errors
	through to gimlet responders unchanged.

	To add to the Connector, add the method signature to the interface in
	data/connector.go. Next, add the implementation that interacts with the
	database to DBConnector in data/todo.go, and a matching in-memory
	implementation to MockConnector in data/mock_impl.go.

	As much database specific information as possible should be kept out of
	these methods. Queries and aggregation pipelines belong in the
	model/todo package and are only called from here.
*/
package data
