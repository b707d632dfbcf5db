package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/somoscan/internal/errors"
	"github.com/agbru/somoscan/pkg/models"
)

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleScan processes requests to scan one Somos sequence.
// It parses the query parameters 's' (the sequence order) and 'iterations'
// (the optional iteration bound), executes the scan, and returns the full
// step trace in JSON format.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	order, iterations, err := s.parseScanParams(r)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Create a context with timeout for the scan
	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	scanner := s.newScanner(iterations)

	start := time.Now()
	result, err := scanner.Scan(ctx, order)
	duration := time.Since(start)

	if err != nil {
		s.logger.Printf("Scan of order %d failed: %v", order, err)
		s.writeJSONResponse(w, http.StatusOK, models.FromSequenceResult(nil, duration, err))
		return
	}

	s.metrics.ObserveScan(result.Outcome.String(), duration)
	s.writeJSONResponse(w, http.StatusOK, models.FromSequenceResult(result, duration, nil))
}

// parseScanParams extracts and validates the scan parameters from the request.
// Every failure maps to HTTP 400.
//
// Parameters:
//   - r: The HTTP request containing query parameters.
//
// Returns:
//   - order: The parsed sequence order.
//   - iterations: The parsed iteration bound (0 when not specified).
//   - err: An apperrors.ValidationError if validation fails, nil otherwise.
func (s *Server) parseScanParams(r *http.Request) (order, iterations int, err error) {
	orderStr := r.URL.Query().Get("s")
	if orderStr == "" {
		return 0, 0, apperrors.NewValidationError("s", "missing required parameter", nil)
	}

	order, parseErr := strconv.Atoi(orderStr)
	if parseErr != nil || order < 1 {
		return 0, 0, apperrors.NewValidationError("s", "must be a positive integer", orderStr)
	}

	if order > s.securityConfig.MaxOrder {
		return 0, 0, apperrors.NewValidationError("s",
			fmt.Sprintf("exceeds maximum allowed (%d); this limit prevents resource exhaustion", s.securityConfig.MaxOrder),
			order)
	}

	if itStr := r.URL.Query().Get("iterations"); itStr != "" {
		iterations, parseErr = strconv.Atoi(itStr)
		if parseErr != nil || iterations <= order {
			return 0, 0, apperrors.NewValidationError("iterations", "must be an integer greater than 's'", itStr)
		}
		if iterations > s.securityConfig.MaxIterations {
			return 0, 0, apperrors.NewValidationError("iterations",
				fmt.Sprintf("exceeds maximum allowed (%d); this limit prevents resource exhaustion", s.securityConfig.MaxIterations),
				iterations)
		}
	}

	return order, iterations, nil
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, models.ErrorResponse{Error: message})
}
