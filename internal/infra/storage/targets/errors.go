package targets

import "errors"

var (
	// ErrTargetNotFound возвращается, когда целевая сущность не найдена
	ErrTargetNotFound = errors.New("targets.repository: target not found")

	// ErrUnknownTarget возвращается для неизвестного типа цели
	ErrUnknownTarget = errors.New("targets.repository: unknown target")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("targets.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("targets.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("targets.repository: failed to scan row")
)
