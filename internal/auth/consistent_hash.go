package auth

import (
	"hash/crc32"
	"sort"
	"strconv"
	"sync"
)

// vnode 环上的一个虚拟节点
type vnode struct {
	hash uint32
	node string
}

// Ring 一致性哈希环，按令牌把会话缓存分配到固定的缓存节点，
// 节点扩缩容时只迁移相邻区间的键
type Ring struct {
	mu       sync.RWMutex
	replicas int
	vnodes   []vnode
	members  map[string]struct{}
}

// NewRing 创建哈希环。nodes 为空时退化为单节点环，保证 Pick 总有结果
func NewRing(nodes []string, replicas int) *Ring {
	if replicas <= 0 {
		replicas = 64
	}
	if len(nodes) == 0 {
		nodes = []string{"shop-cache-1"}
	}
	r := &Ring{
		replicas: replicas,
		members:  make(map[string]struct{}),
	}
	r.Add(nodes...)
	return r
}

// Add 添加节点，重复添加会被忽略
func (r *Ring) Add(nodes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, node := range nodes {
		if _, ok := r.members[node]; ok {
			continue
		}
		r.members[node] = struct{}{}
		for i := 0; i < r.replicas; i++ {
			r.vnodes = append(r.vnodes, vnode{
				hash: crc32.ChecksumIEEE([]byte(node + "@" + strconv.Itoa(i))),
				node: node,
			})
		}
	}
	sort.Slice(r.vnodes, func(i, j int) bool { return r.vnodes[i].hash < r.vnodes[j].hash })
}

// Pick 返回 key 顺时针方向最近的节点
func (r *Ring) Pick(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.vnodes) == 0 {
		return ""
	}
	h := crc32.ChecksumIEEE([]byte(key))
	idx := sort.Search(len(r.vnodes), func(i int) bool { return r.vnodes[i].hash >= h })
	if idx == len(r.vnodes) {
		idx = 0
	}
	return r.vnodes[idx].node
}
