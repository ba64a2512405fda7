package property

import "errors"

var (
	// ErrPropertyNotFound возвращается, когда объект не найден
	ErrPropertyNotFound = errors.New("property.repository: property not found")

	// ErrOwnerNotFound возвращается, когда владелец объекта не существует (нарушение внешнего ключа)
	ErrOwnerNotFound = errors.New("property.repository: owner not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("property.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("property.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("property.repository: failed to scan row")
)
