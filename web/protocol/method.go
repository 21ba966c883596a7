package protocol

// Method is a request method token. Matching is case sensitive.
type Method string

const (
	MethodGet     Method = "GET"
	MethodDelete  Method = "DELETE"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodHead    Method = "HEAD"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

var methods = map[string]Method{
	string(MethodGet):     MethodGet,
	string(MethodDelete):  MethodDelete,
	string(MethodPost):    MethodPost,
	string(MethodPut):     MethodPut,
	string(MethodHead):    MethodHead,
	string(MethodConnect): MethodConnect,
	string(MethodOptions): MethodOptions,
	string(MethodTrace):   MethodTrace,
	string(MethodPatch):   MethodPatch,
}

func ParseMethod(s string) (Method, error) {
	if m, ok := methods[s]; ok {
		return m, nil
	}
	return "", ErrInvalidMethod
}

func (m Method) String() string {
	return string(m)
}
