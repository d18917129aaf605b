package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

// Binding is the capability a constructed protocol binding must satisfy.
type Binding interface {
	BindingType() BindingType
	SessionID() string
	GetSPI() (SPI, error)
	RepositoryService() RepositoryService
	ClearAllCaches()
	Close() error
}

// SPI is the protocol-client contract implemented by a binding variant's
// service endpoint.
type SPI interface {
	GetRepositoryInfos(ctx context.Context) ([]RepositoryInfo, error)
	GetRepositoryInfo(ctx context.Context, repositoryID string) (RepositoryInfo, error)
	GetTypeDefinition(ctx context.Context, repositoryID string, typeID string) (TypeDefinition, error)
	ClearRepositoryCache(ctx context.Context, repositoryID string) error
	Close() error
}

type RepositoryService interface {
	GetRepositoryInfos(ctx context.Context) ([]RepositoryInfo, error)
	GetRepositoryInfo(ctx context.Context, repositoryID string) (RepositoryInfo, error)
	GetTypeDefinition(ctx context.Context, repositoryID string, typeID string) (TypeDefinition, error)
}

// HTTPInvoker is the generic HTTP-client contract used by bindings to reach
// the repository.
type HTTPInvoker interface {
	Invoke(ctx context.Context, session *Session, req InvokeRequest) (InvokeResponse, error)
}

type Codec interface {
	ContentType() string
	Encode(value any) ([]byte, error)
	Decode(payload []byte, target any) error
}

type AuthenticationProvider interface {
	HTTPHeaders(ctx context.Context, url string) (map[string]string, error)
}

type TypeDefinitionLoader func(ctx context.Context) (TypeDefinition, error)

type TypeDefinitionCache interface {
	GetOrLoad(ctx context.Context, repositoryID string, typeID string, load TypeDefinitionLoader) (TypeDefinition, error)
	Invalidate(ctx context.Context, repositoryID string, typeID string) error
	InvalidateRepository(ctx context.Context, repositoryID string) error
	Clear(ctx context.Context) error
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type InvokeRequest struct {
	Method               string
	URL                  string
	Headers              map[string]string
	Query                map[string]string
	Body                 []byte
	ContentType          string
	Timeout              time.Duration
	MaxResponseBodyBytes int64
}

type InvokeResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

type RepositoryInfo struct {
	ID                string         `json:"repositoryId"`
	Name              string         `json:"repositoryName"`
	Description       string         `json:"repositoryDescription,omitempty"`
	VendorName        string         `json:"vendorName,omitempty"`
	ProductName       string         `json:"productName,omitempty"`
	ProductVersion    string         `json:"productVersion,omitempty"`
	RootFolderID      string         `json:"rootFolderId,omitempty"`
	CMISVersion       string         `json:"cmisVersionSupported,omitempty"`
	RepositoryURL     string         `json:"repositoryUrl,omitempty"`
	RootFolderURL     string         `json:"rootFolderUrl,omitempty"`
	LatestChangeToken string         `json:"latestChangeLogToken,omitempty"`
	Capabilities      map[string]any `json:"capabilities,omitempty"`
}

type TypeDefinition struct {
	ID                  string                        `json:"id"`
	LocalName           string                        `json:"localName,omitempty"`
	DisplayName         string                        `json:"displayName,omitempty"`
	QueryName           string                        `json:"queryName,omitempty"`
	Description         string                        `json:"description,omitempty"`
	BaseID              string                        `json:"baseId"`
	ParentID            string                        `json:"parentId,omitempty"`
	Creatable           bool                          `json:"creatable"`
	Fileable            bool                          `json:"fileable"`
	Queryable           bool                          `json:"queryable"`
	PropertyDefinitions map[string]PropertyDefinition `json:"propertyDefinitions,omitempty"`
}

type PropertyDefinition struct {
	ID           string `json:"id"`
	LocalName    string `json:"localName,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	PropertyType string `json:"propertyType"`
	Cardinality  string `json:"cardinality"`
	Updatability string `json:"updatability,omitempty"`
	Required     bool   `json:"required"`
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
