// Package login drives the login form: it validates input, runs the login
// flow through the session store, turns failures into user-facing messages
// and navigates to the dashboard on success.
package login
