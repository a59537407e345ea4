package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/MKhiriev/world-server/internal/hashing"
	"github.com/MKhiriev/world-server/internal/logger"
)

// multipartOverhead is the allowance for multipart headers and boundaries on
// top of the configured file size limit.
const multipartOverhead = 1 << 20

var extensionPattern = regexp.MustCompile(`^\.[a-z0-9]{1,16}$`)

var errHashMismatch = errors.New("uploaded content does not match the declared hash")

type uploadResponse struct {
	Hash     string `json:"hash"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// upload stores the "file" part of a multipart request in the world's assets
// directory as <sha256><ext>. Uploading the same content twice is a no-op.
// An optional "hash" field is compared with the digest computed here.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	maxBytes := h.cfg.Public().MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			log.Warn().Err(ErrUploadTooLarge).Int64("limit", maxBytes).Send()
			http.Error(w, ErrUploadTooLarge.Error(), http.StatusRequestEntityTooLarge)
		default:
			log.Err(err).Msg(ErrNoFile.Error())
			http.Error(w, ErrNoFile.Error(), http.StatusBadRequest)
		}
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		log.Warn().Err(ErrUploadTooLarge).Int64("size", header.Size).Int64("limit", maxBytes).Send()
		http.Error(w, ErrUploadTooLarge.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Err(err).Msg("error reading upload")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	hash := hashing.Sum(data)
	if declared := strings.ToLower(strings.TrimSpace(r.FormValue("hash"))); declared != "" && declared != hash {
		log.Warn().Str("declared", declared).Str("computed", hash).Msg(errHashMismatch.Error())
		http.Error(w, errHashMismatch.Error(), http.StatusBadRequest)
		return
	}

	filename := hash + assetExtension(header.Filename)
	if err := h.storeAsset(filename, data); err != nil {
		log.Err(err).Str("filename", filename).Msg("error storing asset")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Info().Str("filename", filename).Int("size", len(data)).Msg("asset uploaded")

	w.Header().Set("Content-Type", "application/json")
	resp := uploadResponse{
		Hash:     hash,
		Filename: filename,
		URL:      h.cfg.Public().AssetsURL() + "/" + filename,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Err(err).Msg("error encoding upload response")
	}
}

// storeAsset writes data unless a file with the same content-addressed name
// already exists.
func (h *Handler) storeAsset(filename string, data []byte) error {
	path := filepath.Join(h.cfg.World().AssetsDir(), filename)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error creating asset file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("error writing asset file: %w", err)
	}

	return f.Close()
}

// assetExtension returns the lowercased extension of name, or "" when it is
// not a short alphanumeric extension.
func assetExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if !extensionPattern.MatchString(ext) {
		return ""
	}

	return ext
}
