package txmanager

import "context"

// NopManager для хранилищ без транзакций между коллекциями (memory, mongo)
// fn выполняется как есть; атомарность отдельных операций обеспечивает само хранилище
type NopManager struct{}

func NewNopManager() *NopManager {
	return &NopManager{}
}

func (m *NopManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *NopManager) IsTransactional() bool {
	return false
}
