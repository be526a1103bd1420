package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/NgigiN/momo/internal/records"
)

const maxBodyBytes = 1 << 20

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	w.Header().Set("Allow", allowed)
	writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed,
		fmt.Sprintf("Method %s not allowed", r.Method))
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		tx, err := s.engine.LookupByID(id)
		if err != nil {
			writeFailure(w, notFound(id, err))
			return
		}
		writeSuccess(w, map[string]any{"transaction": tx}, "")
	case http.MethodPut:
		s.updateTransaction(w, r, id)
	case http.MethodDelete:
		tx, err := s.engine.Store().Delete(id)
		if err != nil {
			writeFailure(w, notFound(id, err))
			return
		}
		writeSuccess(w, map[string]any{"deleted_transaction": tx}, "Transaction deleted successfully")
	default:
		methodNotAllowed(w, r, "GET, PUT, DELETE")
	}
}

// pathID parses the {id} segment. Any integer is accepted, including 0 and
// negatives, which simply do not exist.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidID, "Invalid transaction ID format")
		return 0, false
	}
	return id, true
}

func notFound(id int, err error) error {
	if !errors.Is(err, records.ErrNotFound) {
		return err
	}
	return fmt.Errorf("transaction with ID %d: %w", id, err)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := records.Query{Type: q.Get("type")}

	var err error
	if query.Page, err = intParam(q, "page"); err != nil {
		writeFailure(w, err)
		return
	}
	if query.PerPage, err = intParam(q, "per_page"); err != nil {
		writeFailure(w, err)
		return
	}
	if query.MinAmount, err = optionalAmount(q, "min_amount"); err != nil {
		writeFailure(w, err)
		return
	}
	if query.MaxAmount, err = optionalAmount(q, "max_amount"); err != nil {
		writeFailure(w, err)
		return
	}

	page, err := s.engine.List(query)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeSuccess(w, page, "")
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(w, r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	tx, err := s.engine.Store().Create(payload)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeSuccess(w, map[string]any{"transaction": tx}, "Transaction created successfully")
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request, id int) {
	payload, err := decodePayload(w, r)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if len(payload) == 0 {
		writeFailure(w, fmt.Errorf("update body must contain at least one field: %w", records.ErrMalformedInput))
		return
	}

	tx, err := s.engine.Store().Update(id, payload)
	if err != nil {
		writeFailure(w, notFound(id, err))
		return
	}
	writeSuccess(w, map[string]any{"transaction": tx}, "Transaction updated successfully")
}

// decodePayload reads a JSON object body. Numbers are kept as json.Number
// so amounts are coerced by the store, not by the decoder.
func decodePayload(w http.ResponseWriter, r *http.Request) (records.Payload, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var payload records.Payload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("request body must contain a valid JSON object: %w", records.ErrMalformedInput)
	}
	if payload == nil {
		return nil, fmt.Errorf("request body must contain a valid JSON object: %w", records.ErrMalformedInput)
	}
	return payload, nil
}

func intParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &records.ValidationError{Field: name, Reason: "must be a positive integer"}
	}
	return n, nil
}

func optionalAmount(q url.Values, name string) (*float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := amountParam(q, name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func amountParam(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, &records.ValidationError{Field: name, Reason: "required query parameter is missing"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &records.ValidationError{Field: name, Reason: fmt.Sprintf("%q is not numeric", raw)}
	}
	return v, nil
}

type searchResult struct {
	Strategy     string                `json:"strategy"`
	Count        int                   `json:"count"`
	Transactions []records.Transaction `json:"transactions"`
}

func (s *Server) handleSearchByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "GET")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	strategy := r.URL.Query().Get("strategy")
	var (
		tx  records.Transaction
		err error
	)
	switch strategy {
	case "", "index":
		strategy = "index"
		tx, err = s.engine.LookupByID(id)
	case "linear":
		tx, err = s.engine.LinearScanByID(id)
	default:
		writeFailure(w, &records.ValidationError{Field: "strategy", Reason: "use index or linear"})
		return
	}
	if err != nil {
		writeFailure(w, notFound(id, err))
		return
	}
	writeSuccess(w, searchResult{Strategy: strategy, Count: 1, Transactions: []records.Transaction{tx}}, "")
}

func (s *Server) handleSearchByType(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "GET")
		return
	}
	txType := r.URL.Query().Get("type")
	if txType == "" {
		writeFailure(w, &records.ValidationError{Field: "type", Reason: "required query parameter is missing"})
		return
	}
	txs := s.engine.LinearScanByType(txType)
	writeSuccess(w, searchResult{Strategy: "linear", Count: len(txs), Transactions: txs}, "")
}

func (s *Server) handleSearchByRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "GET")
		return
	}
	q := r.URL.Query()
	minAmount, err := amountParam(q, "min")
	if err != nil {
		writeFailure(w, err)
		return
	}
	maxAmount, err := amountParam(q, "max")
	if err != nil {
		writeFailure(w, err)
		return
	}
	txs := s.engine.LinearScanByAmountRange(minAmount, maxAmount)
	writeSuccess(w, searchResult{Strategy: "linear", Count: len(txs), Transactions: txs}, "")
}

func (s *Server) handleSearchByAmount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, "GET")
		return
	}
	target, err := amountParam(r.URL.Query(), "value")
	if err != nil {
		writeFailure(w, err)
		return
	}
	txs := s.engine.BinarySearchByAmount(target)
	writeSuccess(w, searchResult{Strategy: "binary", Count: len(txs), Transactions: txs}, "")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]any{
		"status":       "healthy",
		"uptime":       time.Since(s.startTime).String(),
		"transactions": s.engine.Store().Len(),
		"timestamp":    time.Now().Format(time.RFC3339),
	}, "")
}
