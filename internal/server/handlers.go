package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fachry26/acengcleansing/pkg/cleansing"
)

func (s *Server) handleIndex(c *gin.Context) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "index unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// handleProcess accepts the multipart upload, runs one classify-and-export
// call and answers with download links for both result files.
func (s *Server) handleProcess(c *gin.Context) {
	file, header, err := c.Request.FormFile("excelFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file part"})
		return
	}
	defer file.Close()

	if header.Size > s.cfg.MaxUploadMB<<20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the upload size limit"})
		return
	}

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only .xlsx files are allowed."})
		return
	}

	keywords, err := parseJSONList(c.PostForm("keywords"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid keywords format"})
		return
	}
	dropColumns, err := parseJSONList(c.PostForm("dropColumns"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dropColumns format"})
		return
	}

	sheetName := strings.TrimSpace(c.PostForm("inputSheetName"))
	if sheetName == "" {
		sheetName = s.cfg.DefaultSheet
	}

	// A fresh ID per request keeps concurrent uploads of the same file
	// name from sharing paths.
	stored := uuid.New().String() + "_" + filename
	inputPath := filepath.Join(s.cfg.UploadDir, stored)
	if err := saveUpload(file, inputPath); err != nil {
		s.log.Error("saving upload failed", zap.String("file", filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save uploaded file"})
		return
	}

	cleanedName := "cleaned_" + stored
	excludedName := "excluded_" + stored

	opts := cleansing.DefaultOptions()
	opts.SheetName = sheetName
	opts.DropColumns = dropColumns

	s.log.Info("processing upload",
		zap.String("file", filename),
		zap.String("sheet", sheetName),
		zap.Int("keywords", len(keywords)))

	result, procErr := cleansing.ClassifyAndExport(
		inputPath,
		filepath.Join(s.cfg.ProcessedDir, cleanedName),
		filepath.Join(s.cfg.ProcessedDir, excludedName),
		keywords,
		opts,
	)

	// The upload is scratch data either way; a cleanup failure is logged
	// but never masks a processing error already in flight.
	if rmErr := os.Remove(inputPath); rmErr != nil {
		s.log.Warn("removing upload failed", zap.String("path", inputPath), zap.Error(rmErr))
	}

	if procErr != nil {
		kind := cleansing.KindOf(procErr)
		s.log.Error("processing failed",
			zap.String("file", filename),
			zap.String("kind", string(kind)),
			zap.Error(procErr))
		c.JSON(statusForKind(kind), gin.H{"error": procErr.Error(), "kind": string(kind)})
		return
	}

	s.log.Info("processing finished",
		zap.String("file", filename),
		zap.Int("kept", result.KeptRows),
		zap.Int("excluded", result.ExcludedRows))

	c.JSON(http.StatusOK, gin.H{
		"message":       "File processed successfully",
		"cleaned_url":   "/downloads/" + cleanedName,
		"excluded_url":  "/downloads/" + excludedName,
		"kept_rows":     result.KeptRows,
		"excluded_rows": result.ExcludedRows,
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	name := filepath.Base(c.Param("filename"))
	if name == "." || name == string(filepath.Separator) || strings.HasPrefix(name, ".") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name"})
		return
	}

	path := filepath.Join(s.cfg.ProcessedDir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	c.FileAttachment(path, name)
}

func statusForKind(kind cleansing.Kind) int {
	switch kind {
	case cleansing.KindNotFound,
		cleansing.KindSheetNotFound,
		cleansing.KindRequiredColumnMissing,
		cleansing.KindMalformedInput:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func saveUpload(src io.Reader, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}

// parseJSONList decodes an optional JSON string array form field.
func parseJSONList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// sanitizeFilename strips any path component and replaces characters that
// are unsafe in a stored file name.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || strings.Trim(out, "._") == "" {
		out = "upload.xlsx"
	}
	return out
}
