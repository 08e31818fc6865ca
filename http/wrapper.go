package http

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Request to delete a tree translation
type Request struct {
	// The original http request
	OriginalRequest *http.Request

	// Id of the requested record
	ID int64
}

// Response wrapper
type Response struct {
	Writer  http.ResponseWriter
	request *http.Request
}

// SendError sends the appropriate status code to the client
func (response *Response) SendError(err error) {
	sendError(response.Writer, err, selectStatusCode(err))
}

// Redirect the client with 302 Found
func (response *Response) Redirect(url string) {
	http.Redirect(response.Writer, response.request, url, http.StatusFound)
}

// Send the status code and serialized object
func (response *Response) Send(statusCode int, obj interface{}) {
	out, err := json.Marshal(obj)
	if err != nil {
		sendError(response.Writer, err, http.StatusInternalServerError)
		return
	}
	response.Writer.Header().Set("Content-Type", "application/json")
	response.Writer.WriteHeader(statusCode)
	response.Writer.Write(out)
}

func selectStatusCode(err error) int {
	var httpErr Error
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}
	return http.StatusInternalServerError
}
