package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedAudio rejects uploads that are not a recognizable audio file.
	ErrUnsupportedAudio = errors.New("unsupported audio format")
	// ErrTooLarge rejects uploads over the configured limit.
	ErrTooLarge = errors.New("audio file too large")
	// ErrDownload marks a failed fetch of a referenced recording.
	ErrDownload = errors.New("audio download failed")
)

// Extensions accepted by the transcription endpoint.
var audioExtensions = []string{".flac", ".m4a", ".mp3", ".mp4", ".mpeg", ".mpga", ".oga", ".ogg", ".wav", ".webm"}

// Some detected container extensions need renaming before upload.
var extensionAliases = map[string]string{
	".ogx":  ".ogg",
	".opus": ".ogg",
}

// Voice notes from messaging platforms are Ogg/Opus.
const defaultDownloadExt = ".ogg"

const sniffLen = 3072

// TempAudio is a recording materialized on local disk for the duration of one
// request.
type TempAudio struct {
	Path string
	Size int64

	once sync.Once
	err  error
}

// Remove deletes the file. Only the first call touches the filesystem; later
// calls return the first result.
func (a *TempAudio) Remove() error {
	a.once.Do(func() {
		if err := os.Remove(a.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			a.err = fmt.Errorf("removing %s: %w", a.Path, err)
		}
	})
	return a.err
}

// Store writes inbound audio into uniquely named files under one directory.
type Store struct {
	dir        string
	maxUpload  int64
	httpClient *http.Client
	logger     *zap.Logger
}

func NewStore(dir string, maxUpload int64, httpClient *http.Client, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Store{
		dir:        dir,
		maxUpload:  maxUpload,
		httpClient: httpClient,
		logger:     logger.Named("storage"),
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// SaveUpload persists a multipart audio part.
func (s *Store) SaveUpload(file *multipart.FileHeader) (*TempAudio, error) {
	if s.maxUpload > 0 && file.Size > s.maxUpload {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, file.Size, s.maxUpload)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	br := bufio.NewReaderSize(src, sniffLen)
	head, _ := br.Peek(sniffLen)

	ext := detectExtension(file.Filename, head)
	if ext == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAudio, file.Filename)
	}

	audio, err := s.write(br, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}

	s.logger.Debug("upload saved", zap.String("path", audio.Path), zap.Int64("size", audio.Size))
	return audio, nil
}

// Download fetches rawURL into a local file, keeping the container format.
func (s *Store) Download(ctx context.Context, rawURL string) (*TempAudio, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrDownload, u.Redacted(), resp.StatusCode)
	}

	br := bufio.NewReaderSize(resp.Body, sniffLen)
	head, _ := br.Peek(sniffLen)

	ext := detectExtension(path.Base(u.Path), head)
	if ext == "" {
		ext = defaultDownloadExt
	}

	audio, err := s.write(br, ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}

	s.logger.Debug("download saved",
		zap.String("url", u.Redacted()),
		zap.String("path", audio.Path),
		zap.Int64("size", audio.Size),
	)
	return audio, nil
}

// write creates exactly one file; on failure nothing is left behind.
func (s *Store) write(src io.Reader, ext string) (*TempAudio, error) {
	dst := s.newPath(ext)

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	n, err := io.Copy(out, src)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
		return nil, err
	}

	return &TempAudio{Path: dst, Size: n}, nil
}

func (s *Store) newPath(ext string) string {
	name := fmt.Sprintf("audio_%d_%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)
	return filepath.Join(s.dir, name)
}

// detectExtension prefers a known extension on name and falls back to
// sniffing the leading bytes. It returns "" when neither looks like audio.
func detectExtension(name string, head []byte) string {
	if ext := normalizeExt(filepath.Ext(name)); ext != "" {
		return ext
	}
	if len(head) == 0 {
		return ""
	}
	return normalizeExt(mimetype.Detect(head).Extension())
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if alias, ok := extensionAliases[ext]; ok {
		ext = alias
	}
	if lo.Contains(audioExtensions, ext) {
		return ext
	}
	return ""
}
