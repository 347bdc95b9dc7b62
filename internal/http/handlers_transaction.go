package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"billtrack/internal/core"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	ts, err := s.transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payloadSlice(ts))
}

// handleCreateTransactions accepts either a single transaction object or an
// array of them, the latter used when a whole installment plan is entered
// upfront.
func (s *Server) handleCreateTransactions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	if isJSONArray(body) {
		var payloads []createTransactionPayload
		if err := json.Unmarshal(body, &payloads); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if len(payloads) == 0 {
			writeError(w, http.StatusBadRequest, "empty transaction list")
			return
		}
		ns := make([]core.NewTransaction, 0, len(payloads))
		for _, p := range payloads {
			n, err := p.toNewTransaction()
			if err != nil {
				writeDomainError(w, err)
				return
			}
			ns = append(ns, n)
		}
		created, err := s.transactions.CreateBatch(r.Context(), ns)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		s.invalidate()
		writeJSON(w, http.StatusCreated, payloadSlice(created))
		return
	}

	var payload createTransactionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	n, err := payload.toNewTransaction()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	created, err := s.transactions.Create(r.Context(), n)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidate()
	writeJSON(w, http.StatusCreated, transactionToPayload(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var payload updateTransactionPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	patch, err := payload.toPatch()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	updated, err := s.transactions.Update(r.Context(), id, patch)
	if err != nil {
		var chainBreak *core.ChainBreakError
		if errors.As(err, &chainBreak) {
			// The status change stood; only the next installment is missing.
			s.invalidate()
			writeJSON(w, http.StatusOK, map[string]any{
				"transaction": transactionToPayload(updated),
				"warning":     "next installment could not be created; add it manually",
			})
			return
		}
		writeDomainError(w, err)
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusOK, transactionToPayload(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.transactions.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}

func isJSONArray(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
