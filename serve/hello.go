package serve

import (
	"fmt"
	"net/http"

	"recognition.dev/cheers/util/version"
)

// hello prints a hello message to let users know the server is running.
func (s *Service) hello(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-type", "text/plain")
	w.Write([]byte("Hello from cheers\n"))
	w.Write([]byte(fmt.Sprintf("Version: %s\n", version.Version())))
}
