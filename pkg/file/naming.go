package file

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"mime"
	"mime/multipart"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/myzx/gohelper/pkg/http/client"
	"go.uber.org/zap"
)

// ErrEmptyURL is returned by DownRemoteFile for a blank URL.
var ErrEmptyURL = errors.New("file: empty url")

// Naming rules for GenerateFileName.
const (
	NameHash = "hash"
	NameTime = "time"
)

var now = time.Now

// GenerateFileName returns a name for a stored file. NameHash yields a
// random md5 hex digest, NameTime the unix seconds, and any other rule is
// used as a time layout.
func GenerateFileName(rule string) string {
	switch rule {
	case NameHash:
		sum := md5.Sum([]byte(uuid.NewString()))
		return hex.EncodeToString(sum[:])
	case NameTime:
		return strconv.FormatInt(now().Unix(), 10)
	}
	return now().Format(rule)
}

// Upload describes a file received in a multipart form.
type Upload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Ext  string `json:"ext"`
}

// UploadInfo extracts the client name, media type without parameters,
// size and extension of an uploaded file.
func UploadInfo(fh *multipart.FileHeader) Upload {
	if fh == nil {
		return Upload{}
	}

	ct := fh.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mediaType, _, _ = strings.Cut(ct, ";")
	}
	mediaType = strings.ToLower(strings.Trim(strings.TrimSpace(mediaType), `"`))

	return Upload{
		Name: fh.Filename,
		Type: mediaType,
		Size: fh.Size,
		Ext:  Ext(fh.Filename),
	}
}

// Download reports where DownRemoteFile stored a file.
type Download struct {
	FileName string
	SavePath string
	Response *client.Response
}

// DownRemoteFile saves rawURL into dir as name. dir defaults to "./"; an
// empty name becomes the unix time plus the extension of the URL path.
// A failed status removes the partial file and returns a
// *client.RequestError.
func (m *Manager) DownRemoteFile(ctx context.Context, rawURL, dir, name string) (*Download, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrEmptyURL
	}
	if strings.TrimSpace(dir) == "" {
		dir = "./"
	}
	if strings.TrimSpace(name) == "" {
		name = GenerateFileName(NameTime) + remoteExt(rawURL)
	}

	savePath := CheckPath(Normalize(dir)) + name
	resp, err := m.httpClient().Download(ctx, rawURL, savePath)
	if err != nil {
		m.logger.Warn("remote file download failed", zap.String("url", rawURL), zap.Error(err))
		return nil, err
	}
	if !resp.Successful() {
		return nil, &client.RequestError{Response: resp, Status: resp.Status()}
	}

	m.logger.Debug("remote file saved", zap.String("url", rawURL), zap.String("path", savePath))
	return &Download{FileName: name, SavePath: savePath, Response: resp}, nil
}

func remoteExt(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	return path.Ext(p)
}
