//go:generate mockgen -source=../order_store.go -destination=./mock_order_store.go -package=mocks
//go:generate mockgen -source=../order_cache.go -destination=./mock_order_cache.go -package=mocks

package mocks
