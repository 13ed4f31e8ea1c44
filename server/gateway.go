package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"storefront/checkout"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
)

// RequestIDHeader carries the per-request id echoed back to callers.
const RequestIDHeader = "X-Request-Id"

type apiFunc func(r *http.Request, inbound runtime.Marshaler, params map[string]string) (any, error)

type route struct {
	method  string
	pattern string
	fn      apiFunc
}

// NewGateway builds the HTTP JSON API over svc.
func NewGateway(svc *Service, logger *zap.Logger) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := runtime.NewServeMux(
		runtime.WithMarshalerOption(runtime.MIMEWildcard, &runtime.JSONPb{
			MarshalOptions: protojson.MarshalOptions{
				UseProtoNames:   false,
				EmitUnpopulated: true,
			},
			UnmarshalOptions: protojson.UnmarshalOptions{
				DiscardUnknown: true,
			},
		}),
	)

	routes := []route{
		{http.MethodGet, "/v1/cart", func(r *http.Request, _ runtime.Marshaler, _ map[string]string) (any, error) {
			return svc.Cart(), nil
		}},
		{http.MethodPost, "/v1/cart/items", func(r *http.Request, in runtime.Marshaler, _ map[string]string) (any, error) {
			var req AddItemRequest
			if err := decodeBody(r, in, &req); err != nil {
				return nil, err
			}
			return svc.AddItem(r.Context(), req)
		}},
		{http.MethodPut, "/v1/cart/items/{id}", func(r *http.Request, in runtime.Marshaler, params map[string]string) (any, error) {
			var req UpdateQuantityRequest
			if err := decodeBody(r, in, &req); err != nil {
				return nil, err
			}
			return svc.UpdateQuantity(r.Context(), params["id"], req.Quantity), nil
		}},
		{http.MethodDelete, "/v1/cart/items/{id}", func(r *http.Request, _ runtime.Marshaler, params map[string]string) (any, error) {
			return svc.RemoveItem(r.Context(), params["id"]), nil
		}},
		{http.MethodDelete, "/v1/cart", func(r *http.Request, _ runtime.Marshaler, _ map[string]string) (any, error) {
			return svc.Clear(r.Context()), nil
		}},
		{http.MethodPut, "/v1/cart/open", func(r *http.Request, in runtime.Marshaler, _ map[string]string) (any, error) {
			var req SetOpenRequest
			if err := decodeBody(r, in, &req); err != nil {
				return nil, err
			}
			return svc.SetOpen(req.Open), nil
		}},
		{http.MethodGet, "/v1/products", func(r *http.Request, _ runtime.Marshaler, _ map[string]string) (any, error) {
			offset, err := queryInt(r, "offset")
			if err != nil {
				return nil, err
			}
			limit, err := queryInt(r, "limit")
			if err != nil {
				return nil, err
			}
			return svc.Products(offset, limit), nil
		}},
		{http.MethodGet, "/v1/products/{id}", func(r *http.Request, _ runtime.Marshaler, params map[string]string) (any, error) {
			return svc.Product(params["id"])
		}},
		{http.MethodPost, "/v1/products/{id}/order", func(r *http.Request, in runtime.Marshaler, params map[string]string) (any, error) {
			req := QuickOrderRequest{Quantity: 1}
			if err := decodeBody(r, in, &req); err != nil {
				return nil, err
			}
			return svc.QuickOrder(params["id"], req.Quantity)
		}},
		{http.MethodPost, "/v1/checkout", func(r *http.Request, in runtime.Marshaler, _ map[string]string) (any, error) {
			var contact checkout.Contact
			if err := decodeBody(r, in, &contact); err != nil {
				return nil, err
			}
			return svc.Checkout(contact)
		}},
	}

	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.pattern, handle(mux, rt.fn)); err != nil {
			return nil, err
		}
	}
	return withRequestLogging(mux, logger), nil
}

func handle(mux *runtime.ServeMux, fn apiFunc) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		inbound, outbound := runtime.MarshalerForRequest(mux, r)

		resp, err := fn(r, inbound, params)
		if err != nil {
			runtime.HTTPError(r.Context(), mux, outbound, w, r, MapCommandError(err))
			return
		}

		body, err := outbound.Marshal(resp)
		if err != nil {
			runtime.HTTPError(r.Context(), mux, outbound, w, r, status.Errorf(codes.Internal, "marshal response: %v", err))
			return
		}
		w.Header().Set("Content-Type", outbound.ContentType(resp))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, marshaler runtime.Marshaler, v any) error {
	if r.Body == nil {
		return nil
	}
	err := marshaler.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return status.Errorf(codes.InvalidArgument, "invalid request body: %v", err)
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
	}
	return n, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func withRequestLogging(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		logger.Info("http request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
