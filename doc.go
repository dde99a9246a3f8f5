/*
Package expressmock builds fake Express-style responses for unit testing
handlers without a server.

GetMockRes returns a *MockResponse that satisfies express.Response, a Next
callback, and a reset for both:

	m := expressmock.GetMockRes()
	handler(req, m.Res, m.Next)

	mockfn.AssertCalledWith(t, m.Res.Mock(expressmock.FieldStatus), []any{404})
	mockfn.AssertNotCalled(t, m.NextMock)

Every method of the response is a *mockfn.Fn. Methods that the framework
documents as chainable (status, json, cookie, on, ...) return the response
itself, so handlers can write res.Status(404).JSON(body). Other methods return
zero values unless configured:

	m.Res.Mock(expressmock.FieldGet).Return("application/json")

Properties such as statusCode or locals live in Res.Props. Defaults can be
replaced when building:

	m := expressmock.GetMockRes(
		expressmock.WithValue(expressmock.FieldStatusCode, 404),
		expressmock.WithValue(expressmock.FieldRedirect, mockfn.New("redirect")),
		expressmock.WithValue("tenant", "acme"), // lands in Res.Extra
	)

MockClear (or its alias ClearMockRes) forgets recorded calls but leaves
properties and configured results alone.
*/
package expressmock
