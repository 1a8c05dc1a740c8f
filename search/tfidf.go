package search

import (
	"math"
	"strings"
)

// Vectorizer 是 TF-IDF 文本向量化器。
//
// 词表在 Fit 时固定；Transform 对词表外的词贡献零权重（静默忽略，不报错）。
// 权重公式与常见实现对齐：
//   - idf = ln((1+n)/(1+df)) + 1（平滑，保证 idf > 0）
//   - 文档向量做 L2 归一化，归一化后点积即余弦相似度
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// Tokenize 把规范化文本切分为词元：按空白切分，丢弃单字符词元。
// 输入应当已经过 catalog.Normalize 处理。
func Tokenize(text string) []string {
	fields := strings.Fields(text)
	out := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

// FitVectorizer 在语料上拟合词表与 idf。
func FitVectorizer(corpus []string) *Vectorizer {
	v := &Vectorizer{vocab: make(map[string]int)}

	df := make([]int, 0)
	seen := make(map[string]struct{})
	for _, doc := range corpus {
		clear(seen)
		for _, tok := range Tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			idx, ok := v.vocab[tok]
			if !ok {
				idx = len(df)
				v.vocab[tok] = idx
				df = append(df, 0)
			}
			df[idx]++
		}
	}

	n := float64(len(corpus))
	v.idf = make([]float64, len(df))
	for i, d := range df {
		v.idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}
	return v
}

// VocabSize 返回词表大小。
func (v *Vectorizer) VocabSize() int {
	return len(v.vocab)
}

// Transform 把一段规范化文本转为稀疏 TF-IDF 向量（词表索引 -> 权重），L2 归一化。
// 全部词元都在词表外（或文本为空）时返回空向量。
func (v *Vectorizer) Transform(text string) map[int]float64 {
	vec := make(map[int]float64)
	for _, tok := range Tokenize(text) {
		if idx, ok := v.vocab[tok]; ok {
			vec[idx]++
		}
	}
	if len(vec) == 0 {
		return vec
	}

	var norm float64
	for idx, tf := range vec {
		w := tf * v.idf[idx]
		vec[idx] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}
