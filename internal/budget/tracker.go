// Package budget 跟踪每个用户相对年度碳预算的状态
package budget

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/looplab/fsm"
)

// 预算状态常量
const (
	StateOnTrack     = "on_track"
	StateApproaching = "approaching"
	StateExceeded    = "exceeded"
)

// 事件常量
const (
	EventRecover  = "recover"
	EventApproach = "approach"
	EventExceed   = "exceed"
)

// 阈值（已用 / 预算）
const (
	ApproachingRatio = 0.8
	ExceededRatio    = 1.0
)

// ErrInvalidBudget 预算不是有限正数；默认预算由资料偏好补全
var ErrInvalidBudget = errors.New("budget must be a positive number")

// Status 用户预算状态
type Status struct {
	UserID   string    `json:"user_id"`
	State    string    `json:"state"`
	UsedKg   float64   `json:"used_kg"`
	BudgetKg float64   `json:"budget_kg"`
	Usage    float64   `json:"usage"`
	Since    time.Time `json:"since"`
}

// Transition 状态变化通知
type Transition struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Status Status `json:"status"`
}

// Usage 已用预算比例，budgetKg 必须为正
func Usage(usedKg, budgetKg float64) float64 {
	return usedKg / budgetKg
}

// Level 根据用量计算目标状态，budgetKg 必须为正
func Level(usedKg, budgetKg float64) string {
	ratio := Usage(usedKg, budgetKg)
	switch {
	case ratio >= ExceededRatio:
		return StateExceeded
	case ratio >= ApproachingRatio:
		return StateApproaching
	}
	return StateOnTrack
}

func eventFor(state string) string {
	switch state {
	case StateExceeded:
		return EventExceed
	case StateApproaching:
		return EventApproach
	}
	return EventRecover
}

// Machine 单个用户的预算状态机
type Machine struct {
	mu       sync.RWMutex
	fsm      *fsm.FSM
	status   Status
	onChange func(t Transition)
}

// NewMachine 创建状态机，初始为 on_track
func NewMachine(userID string, onChange func(t Transition)) *Machine {
	m := &Machine{
		onChange: onChange,
		status: Status{
			UserID: userID,
			State:  StateOnTrack,
			Since:  time.Now(),
		},
	}

	m.fsm = fsm.NewFSM(
		StateOnTrack,
		fsm.Events{
			{Name: EventApproach, Src: []string{StateOnTrack, StateExceeded}, Dst: StateApproaching},
			{Name: EventExceed, Src: []string{StateOnTrack, StateApproaching}, Dst: StateExceeded},
			{Name: EventRecover, Src: []string{StateApproaching, StateExceeded}, Dst: StateOnTrack},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				m.status.State = e.Dst
				m.status.Since = time.Now()
			},
		},
	)

	return m
}

// Status 获取状态副本
func (m *Machine) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Observe 记录最新用量并在需要时切换状态
// 状态变化时在释放锁之后回调 onChange
func (m *Machine) Observe(ctx context.Context, usedKg, budgetKg float64) (Status, error) {
	if !(budgetKg > 0) || math.IsInf(budgetKg, 0) {
		return Status{}, fmt.Errorf("%w: %v", ErrInvalidBudget, budgetKg)
	}

	m.mu.Lock()

	m.status.UsedKg = usedKg
	m.status.BudgetKg = budgetKg
	m.status.Usage = Usage(usedKg, budgetKg)

	from := m.fsm.Current()
	target := Level(usedKg, budgetKg)
	if target != from {
		event := eventFor(target)
		if err := m.fsm.Event(ctx, event); err != nil {
			m.mu.Unlock()
			return Status{}, fmt.Errorf("trigger event %s: %w", event, err)
		}
	}
	status := m.status
	m.mu.Unlock()

	if target != from && m.onChange != nil {
		m.onChange(Transition{From: from, To: target, Status: status})
	}
	return status, nil
}

// Manager 预算状态机管理器
type Manager struct {
	mu       sync.RWMutex
	machines map[string]*Machine
	onChange func(t Transition)
}

// NewManager 创建管理器
func NewManager(onChange func(t Transition)) *Manager {
	return &Manager{
		machines: make(map[string]*Machine),
		onChange: onChange,
	}
}

// GetOrCreate 获取或创建状态机
func (m *Manager) GetOrCreate(userID string) *Machine {
	m.mu.Lock()
	defer m.mu.Unlock()

	if machine, ok := m.machines[userID]; ok {
		return machine
	}

	machine := NewMachine(userID, m.onChange)
	m.machines[userID] = machine
	return machine
}

// Get 获取状态机
func (m *Manager) Get(userID string) (*Machine, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	machine, ok := m.machines[userID]
	return machine, ok
}

// Observe 更新用户的预算用量
func (m *Manager) Observe(ctx context.Context, userID string, usedKg, budgetKg float64) (Status, error) {
	return m.GetOrCreate(userID).Observe(ctx, usedKg, budgetKg)
}

// AllStatuses 获取所有用户的预算状态
func (m *Manager) AllStatuses() map[string]Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	statuses := make(map[string]Status, len(m.machines))
	for userID, machine := range m.machines {
		statuses[userID] = machine.Status()
	}
	return statuses
}
