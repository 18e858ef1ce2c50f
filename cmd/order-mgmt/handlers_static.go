package main

import "net/http"

func helloHandler(w http.ResponseWriter, r *http.Request) {
	writeText(w, "hello")
}

func worldHandler(w http.ResponseWriter, r *http.Request) {
	writeText(w, "world")
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
