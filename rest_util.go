package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"reflect"

	. "github.com/ttpr0/go-adjacency/util"
	"golang.org/x/exp/slog"
)

type none struct{}

func ReadRequestBody[T any](r *http.Request) (T, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error(err.Error())
		var t T
		return t, err
	}
	var req T
	err = json.Unmarshal(data, &req)
	if err != nil {
		slog.Error(err.Error())
		var t T
		return t, err
	}
	return req, nil
}

func WriteResponse[T any](w http.ResponseWriter, resp T, status int) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

type Result struct {
	result any
	status int
}

func OK[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusOK,
	}
}

func BadRequest[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusBadRequest,
	}
}

func InternalError[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusInternalServerError,
	}
}

// Handlers get the request context, it is cancelled when the client disconnects.
func MapPost[F any](app *http.ServeMux, path string, handler func(context.Context, F) Result) {
	app.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		slog.Info("POST " + path)
		if r.Method != http.MethodPost {
			WriteResponse(w, NewErrorResponse(path, "method not allowed"), http.StatusMethodNotAllowed)
			return
		}
		body, err := ReadRequestBody[F](r)
		if err != nil {
			slog.Error("failed POST " + err.Error())
			WriteResponse(w, NewErrorResponse(path, err.Error()), http.StatusBadRequest)
			return
		}
		res := handler(r.Context(), body)
		if res.status != http.StatusOK {
			slog.Error("failed POST " + path)
			WriteResponse(w, NewErrorResponse(path, res.result), res.status)
		} else {
			slog.Info("successfully finished POST")
			WriteResponse(w, res.result, res.status)
		}
	})
}

// Fills the fields of F from the url query using the "json" field tags.
func MapGet[F any](app *http.ServeMux, path string, handler func(F) Result) {
	var val F
	typ := reflect.TypeOf(val)
	fields := NewList[Triple[int, string, reflect.Kind]](typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" {
			continue
		}
		if kind := FieldKind(field.Type); kind != reflect.Invalid {
			fields.Add(MakeTriple(i, tag, kind))
		}
	}
	app.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		slog.Info("GET " + path)
		query := r.URL.Query()
		t := reflect.New(typ).Elem()
		for _, field := range fields {
			if value := query.Get(field.B); value != "" {
				ParseFieldValue(t.Field(field.A), field.C, value)
			}
		}
		res := handler(t.Interface().(F))
		if res.status != http.StatusOK {
			slog.Error("failed GET " + path)
			WriteResponse(w, NewErrorResponse(path, res.result), res.status)
		} else {
			slog.Info("successfully finished GET")
			WriteResponse(w, res.result, res.status)
		}
	})
}
