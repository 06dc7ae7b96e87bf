package auth

import (
	"hash/fnv"
	"sort"
	"strconv"
	"sync"
)

// Ring 鉴权缓存分片用的一致性哈希环。
// 每个真实节点按 replicas 个虚拟节点落到环上，token 依哈希顺时针归属最近节点。
type Ring struct {
	mu       sync.RWMutex
	replicas int
	points   []uint32
	owner    map[uint32]string
	seen     map[string]bool
}

// NewRing 创建哈希环；nodes 为空时放一个默认节点兜底。
func NewRing(nodes []string, replicas int) *Ring {
	if replicas <= 0 {
		replicas = 50
	}
	if len(nodes) == 0 {
		nodes = []string{"cache-node-0"}
	}
	r := &Ring{
		replicas: replicas,
		owner:    make(map[uint32]string),
		seen:     make(map[string]bool),
	}
	r.AddNodes(nodes...)
	return r
}

func hashOf(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// AddNodes 批量加入节点，重复节点忽略。
func (r *Ring) AddNodes(nodes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, node := range nodes {
		if r.seen[node] {
			continue
		}
		r.seen[node] = true
		for i := 0; i < r.replicas; i++ {
			p := hashOf(node + "@" + strconv.Itoa(i))
			r.points = append(r.points, p)
			r.owner[p] = node
		}
	}
	sort.Slice(r.points, func(i, j int) bool { return r.points[i] < r.points[j] })
}

// Pick 返回 key 归属的节点名。
func (r *Ring) Pick(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.points) == 0 {
		return ""
	}
	h := hashOf(key)
	idx := sort.Search(len(r.points), func(i int) bool { return r.points[i] >= h })
	if idx == len(r.points) {
		idx = 0
	}
	return r.owner[r.points[idx]]
}
