package client

import "fmt"

// loginPath is where a 403 without a body-level redirect sends the user.
const loginPath = "/accounts/login/"

// APIError is a well-formed response that reports success=false. Message is
// the server-provided text, possibly empty.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "storefront rejected the request"
	}
	return fmt.Sprintf("storefront rejected the request: %s", e.Message)
}

// AuthRequiredError means the storefront wants the user authenticated before
// the operation can proceed. Location is the page to navigate to.
type AuthRequiredError struct {
	Location string
}

func (e *AuthRequiredError) Error() string {
	return fmt.Sprintf("authentication required, redirect to %s", e.Location)
}
