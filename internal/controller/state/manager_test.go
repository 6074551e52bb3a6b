package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerStateLifecycle(t *testing.T) {
	sm := NewManager()

	assert.Equal(t, StateNone, sm.GetState(42))

	sm.SetState(42, StateLoginUsername)
	assert.Equal(t, StateLoginUsername, sm.GetState(42))

	sm.SetState(42, StateLoginPassword)
	assert.Equal(t, StateLoginPassword, sm.GetState(42))

	// Установка StateNone эквивалентна очистке
	sm.SetState(42, StateNone)
	assert.Equal(t, StateNone, sm.GetState(42))
	_, ok := sm.GetData(42, "login_username")
	assert.False(t, ok)
}

func TestManagerDataAccessors(t *testing.T) {
	sm := NewManager()

	sm.SetData(7, "user_id", int64(99))
	sm.SetData(7, "username", "admin")
	sm.SetData(7, "amount", 150.5)

	id, ok := sm.GetInt64(7, "user_id")
	require.True(t, ok)
	assert.Equal(t, int64(99), id)

	name, ok := sm.GetString(7, "username")
	require.True(t, ok)
	assert.Equal(t, "admin", name)

	amount, ok := sm.GetFloat64(7, "amount")
	require.True(t, ok)
	assert.Equal(t, 150.5, amount)

	// Неверный тип не паникует, а возвращает false
	_, ok = sm.GetInt64(7, "username")
	assert.False(t, ok)

	_, ok = sm.GetString(7, "missing")
	assert.False(t, ok)
}

func TestManagerClearState(t *testing.T) {
	sm := NewManager()

	sm.SetState(1, StateCreatePaymentStudent)
	sm.SetData(1, "student_name", "Иван Петров")

	sm.ClearState(1)

	assert.Equal(t, StateNone, sm.GetState(1))
	_, ok := sm.GetData(1, "student_name")
	assert.False(t, ok)
}

func TestManagerGetAllDataReturnsCopy(t *testing.T) {
	sm := NewManager()

	sm.SetState(5, StateCreateUserUsername)
	sm.SetData(5, "username", "teacher1")

	data := sm.GetAllData(5)
	require.NotNil(t, data)
	data["username"] = "hacked"

	name, ok := sm.GetString(5, "username")
	require.True(t, ok)
	assert.Equal(t, "teacher1", name)
}

func TestManagerConcurrentAccess(t *testing.T) {
	sm := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.SetState(id, StateSearchUsers)
			sm.SetData(id, "query", "math")
			_ = sm.GetState(id)
			_ = sm.GetAllData(id)
			sm.ClearState(id)
		}(int64(i))
	}
	wg.Wait()
}
