/**
 *
 * 利用数组实现双端队列
 * 服务端用它保存最近的计算结果，超出容量时从头部淘汰
 *
 */

package deque

// 数组大小基数
const base = 8

// ArrDeque is a bounded ring buffer. It is not safe for concurrent use.
type ArrDeque[T any] struct {
	arr []T
	// 头部元素下标
	start int
	// 元素个数
	size int
	// 最多保存的元素个数
	limit int
}

// 工厂方法，底层数组大小向上取整到 base 的倍数
func NewArrDeque[T any](limit int) *ArrDeque[T] {
	if limit < 1 {
		limit = 1
	}
	capacity := limit
	if remainder := capacity % base; remainder != 0 {
		capacity = capacity - remainder + base
	}
	return &ArrDeque[T]{arr: make([]T, capacity), limit: limit}
}

// 正向遍历
func (ad *ArrDeque[T]) Traverse(f func(i int, item T)) {
	for i := 0; i < ad.size; i++ {
		f(i, ad.arr[(ad.start+i)%len(ad.arr)])
	}
}

// Items copies the elements from head to tail.
func (ad *ArrDeque[T]) Items() []T {
	items := make([]T, 0, ad.size)
	ad.Traverse(func(_ int, item T) { items = append(items, item) })
	return items
}

// 在队列结尾增加一个元素，队列已满时返回 false
func (ad *ArrDeque[T]) AddLast(item T) bool {
	if ad.IsFull() {
		return false
	}
	ad.arr[(ad.start+ad.size)%len(ad.arr)] = item
	ad.size++
	return true
}

// 在队列头部删除一个元素
func (ad *ArrDeque[T]) RemoveFirst() (T, bool) {
	var zero T
	if ad.IsEmpty() {
		return zero, false
	}
	item := ad.arr[ad.start]
	ad.arr[ad.start] = zero
	ad.start = (ad.start + 1) % len(ad.arr)
	ad.size--
	return item, true
}

// Push appends item and evicts the head when the deque is full.
func (ad *ArrDeque[T]) Push(item T) {
	if ad.IsFull() {
		ad.RemoveFirst()
	}
	ad.AddLast(item)
}

func (ad *ArrDeque[T]) IsFull() bool { return ad.size == ad.limit }

func (ad *ArrDeque[T]) IsEmpty() bool { return ad.size == 0 }
