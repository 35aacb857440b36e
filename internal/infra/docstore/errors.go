package docstore

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к MongoDB
	ErrConnect = errors.New("docstore: failed to connect")

	// ErrQuery возвращается при ошибке выполнения запроса
	ErrQuery = errors.New("docstore: query failed")

	// ErrDecode возвращается, если документ не декодируется
	ErrDecode = errors.New("docstore: failed to decode document")
)
