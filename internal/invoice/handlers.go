package invoice

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
)

// extractionFailureMessage is the single generic error surfaced to the user
// when a batch fails; details go to the diagnostic log only.
const extractionFailureMessage = "An error occurred while processing the invoices. Please try again."

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// jsonError writes a JSON error body with CORS headers set
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleLogin records the active username
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(req.Username)
	if err := s.service.Login(username); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"username": username})
}

// handleGetSession returns the last logged in username
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	user, err := s.service.CurrentUser()
	if err != nil {
		slog.Error("Error loading session", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if user == "" {
		corsError(w, "No active session", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"username": user}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleLogout clears the active username. Persisted invoices are kept.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Logout(); err != nil {
		slog.Error("Error clearing session", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUploadInvoices runs one extraction batch over the uploaded files
func (s *Server) handleUploadInvoices(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 50MB to handle high-resolution phone photos)
	maxFormSize := int64(50 << 20) // 50MB
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		errorMsg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			errorMsg = "Upload is too large. Maximum size is 50MB. Please compress or resize your documents."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return
	}

	user := strings.TrimSpace(r.FormValue("user"))
	if user == "" {
		jsonError(w, "Username required", http.StatusBadRequest)
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		jsonError(w, "No files were selected. Please choose at least one file to upload.", http.StatusBadRequest)
		return
	}

	files := make([]BatchFile, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxFormSize {
			jsonError(w, "File is too large. Maximum size is 50MB. Please compress or resize your document.", http.StatusBadRequest)
			return
		}

		f, err := header.Open()
		if err != nil {
			slog.Error("Error opening uploaded file", "filename", header.Filename, "error", err)
			jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			slog.Error("Error reading file data", "filename", header.Filename, "error", err)
			jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
			return
		}

		files = append(files, BatchFile{
			Name:        header.Filename,
			Data:        data,
			ContentType: fileContentType(header.Filename, header.Header.Get("Content-Type")),
		})
	}

	invoices, err := s.service.ProcessBatch(r.Context(), user, files)
	if err != nil {
		// Details are already in the log; the user gets a generic retry message
		jsonError(w, extractionFailureMessage, http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(invoices); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleListInvoices returns the filtered invoice list for a user
func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if user == "" {
		corsError(w, "Username required", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	invoices, err := s.service.ListInvoices(user, q.Get("q"), q.Get("start"), q.Get("end"))
	if err != nil {
		slog.Error("Error listing invoices", "user", user, "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Ensure we always return an array, not nil
	if invoices == nil {
		invoices = []Invoice{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(invoices); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleExportInvoices returns the filtered invoices as tab-separated text.
// The frontend copies the payload to the clipboard; a failed export here is
// a loud error, not a silent success.
func (s *Server) handleExportInvoices(w http.ResponseWriter, r *http.Request) {
	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if user == "" {
		corsError(w, "Username required", http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	tsv, err := s.service.Export(user, q.Get("q"), q.Get("start"), q.Get("end"))
	if err != nil {
		slog.Error("Error exporting invoices", "user", user, "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")
	if _, err := io.WriteString(w, tsv); err != nil {
		slog.Error("Error writing export response", "error", err)
	}
}

// fileContentType resolves the content type of an uploaded file, falling
// back to the filename extension when the browser did not send one
func fileContentType(filename string, contentType string) string {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}
