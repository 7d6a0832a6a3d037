package collections

import (
	"sync"
)

// SyncIDMap is a goroutine-safe map keyed by int64 identifiers.
type SyncIDMap struct {
	sync.RWMutex
	m map[int64]interface{}
}

func NewSyncIDMap() *SyncIDMap {
	return &SyncIDMap{m: make(map[int64]interface{})}
}

// Get returns the value for key, or nil if absent.
func (m *SyncIDMap) Get(key int64) interface{} {
	m.RLock()
	value := m.m[key]
	m.RUnlock()
	return value
}

func (m *SyncIDMap) Put(key int64, value interface{}) {
	m.Lock()
	m.m[key] = value
	m.Unlock()
}

func (m *SyncIDMap) Remove(key int64) {
	m.Lock()
	delete(m.m, key)
	m.Unlock()
}

func (m *SyncIDMap) Size() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.m)
}

/**
 * for support multi thread, just copy all map value to slice
 */
func (m *SyncIDMap) Values() []interface{} {
	m.RLock()
	defer m.RUnlock()
	var list []interface{}
	for _, v := range m.m {
		list = append(list, v)
	}
	return list
}

func (m *SyncIDMap) Keys() []int64 {
	m.RLock()
	defer m.RUnlock()
	var list []int64
	for k := range m.m {
		list = append(list, k)
	}
	return list
}
