package input

import (
	"context"
	"fmt"

	"github.com/annel0/tile-adventure/internal/vec"
)

// Intents — намерения, выработанные за один тик. Ядро не знает, как они
// получены: с клавиатуры, геймпада или из скрипта.
type Intents struct {
	Move     vec.Vec2Float
	Attack   bool
	Interact bool
	Close    bool
}

// Empty сообщает, что за тик не сработало ни одно намерение
func (in Intents) Empty() bool {
	return in.Move.IsZero() && !in.Attack && !in.Interact && !in.Close
}

// Claim — результат обработки ввода одним звеном цепочки
type Claim uint8

const (
	// Pass — звено не забрало ввод, он передаётся дальше
	Pass Claim = iota
	// Claimed — ввод обработан, дальше по цепочке не идёт
	Claimed
)

func (c Claim) String() string {
	if c == Claimed {
		return "claimed"
	}
	return "pass"
}

// Handler — звено цепочки приоритетов (оверлей → мир → запасной обработчик)
type Handler interface {
	HandleInput(ctx context.Context, in Intents) (Claim, error)
}

// HandlerFunc позволяет использовать функцию как Handler
type HandlerFunc func(ctx context.Context, in Intents) (Claim, error)

func (f HandlerFunc) HandleInput(ctx context.Context, in Intents) (Claim, error) {
	return f(ctx, in)
}

// Chain передаёт ввод звеньям по порядку до первого Claimed.
// Заменяет общий флаг "ввод уже обработан": результат явно возвращается по цепочке.
type Chain struct {
	handlers []Handler
}

// NewChain создаёт цепочку; порядок аргументов задаёт приоритет
func NewChain(handlers ...Handler) *Chain {
	c := &Chain{}
	for _, h := range handlers {
		if h != nil {
			c.handlers = append(c.handlers, h)
		}
	}
	return c
}

// Push добавляет звено с наивысшим приоритетом (например, открытый диалог)
func (c *Chain) Push(h Handler) {
	if h == nil {
		return
	}
	c.handlers = append([]Handler{h}, c.handlers...)
}

// Pop убирает звено с наивысшим приоритетом
func (c *Chain) Pop() Handler {
	if len(c.handlers) == 0 {
		return nil
	}
	h := c.handlers[0]
	c.handlers = c.handlers[1:]
	return h
}

// Len возвращает количество звеньев
func (c *Chain) Len() int {
	return len(c.handlers)
}

// Dispatch обрабатывает ввод тика. Возвращает индекс звена, забравшего ввод, или -1.
func (c *Chain) Dispatch(ctx context.Context, in Intents) (int, error) {
	for i, h := range c.handlers {
		claim, err := h.HandleInput(ctx, in)
		if err != nil {
			return i, fmt.Errorf("input handler %d: %w", i, err)
		}
		if claim == Claimed {
			return i, nil
		}
	}
	return -1, nil
}

// CloseHandler — запасное звено: по намерению Close вызывает onClose (открыть меню)
func CloseHandler(onClose func(ctx context.Context) error) Handler {
	return HandlerFunc(func(ctx context.Context, in Intents) (Claim, error) {
		if !in.Close || onClose == nil {
			return Pass, nil
		}
		if err := onClose(ctx); err != nil {
			return Claimed, err
		}
		return Claimed, nil
	})
}
