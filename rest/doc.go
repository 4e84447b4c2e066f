/*
	The todo REST API is built from three layers that are useful to understand
	when adding new endpoints.

	Model

	Models are structs that represent the object returned by the API. They
	convert to and from the stored todo with BuildFromService and ToService.
	Request bodies are checked against a JSON schema before they are decoded.

	Connector

	Connector defines interaction with the backing database. It has two
	implementations: DBConnector, which talks to MongoDB, and MockConnector,
	which keeps todos in memory for route tests. Both report failures as
	gimlet.ErrorResponse values carrying the HTTP status of the failure.

	RouteHandler

	Each endpoint is a gimlet.RouteHandler. Factory returns a fresh copy of the
	handler for every request, Parse reads path variables and the body, and
	Run makes one Connector call and builds the response.
*/
package rest
