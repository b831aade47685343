package main

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// reloadMiddleware reloads the account store snapshot from disk before each
// request: state is written out of process, by crankd or the CLI, and the
// explorer only ever observes it.
func reloadMiddleware(reload func() error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := reload(); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Debugf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
