package archive

// FilesResponse is returned by GET /v1/archive/files
type FilesResponse struct {
	Prefix string   `json:"prefix"`
	Files  []string `json:"files"`
	Count  int      `json:"count"`
}

// URLResponse is returned by GET /v1/archive/url
type URLResponse struct {
	File      string `json:"file"`
	URL       string `json:"url"`
	ExpiresIn string `json:"expires_in"`
}
