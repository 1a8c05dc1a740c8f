// Package ingest 实现三个数据源协作者：gzip JSON-lines 图书目录、
// CSV 交互记录、CSV ID 对照表，向核心交付已类型化的记录。
//
// 这里只做格式解析，不做业务过滤：目录的显著性阈值由 catalog.Build 应用，
// 脏记录（字段缺失、无法解析）静默跳过。
package ingest

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rushteam/bookrec/core"
)

// bookLine 对应 Goodreads 目录 dump 中的一行 JSON。
type bookLine struct {
	BookID       string     `json:"book_id"`
	Title        string     `json:"title_without_series"`
	RatingsCount lazyString `json:"ratings_count"`
	URL          string     `json:"url"`
}

// lazyString 兼容字符串与数字两种 JSON 形态的评分数字段。
// 保持原始文本，是否能解析为整数由目录构建时判定。
type lazyString string

func (s *lazyString) UnmarshalJSON(data []byte) error {
	var str string
	if json.Unmarshal(data, &str) == nil {
		*s = lazyString(str)
		return nil
	}
	*s = lazyString(strings.Trim(string(data), `"`))
	return nil
}

// ReadBooks 读取 gzip 压缩的 JSON-lines 图书目录。
func ReadBooks(path string) ([]core.RawBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open books: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("ingest: gunzip books: %w", err)
	}
	defer gz.Close()

	return ParseBooks(gz)
}

// ParseBooks 从 reader 解析 JSON-lines 图书记录。无法解析的行静默跳过。
func ParseBooks(r io.Reader) ([]core.RawBook, error) {
	var out []core.RawBook

	scanner := bufio.NewScanner(r)
	// 单行可以很长（描述、系列信息），放宽缓冲上限
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var line bookLine
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			continue
		}
		if line.BookID == "" {
			continue
		}
		out = append(out, core.RawBook{
			ID:           line.BookID,
			Title:        line.Title,
			RatingsCount: string(line.RatingsCount),
			URL:          line.URL,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ingest: scan books: %w", err)
	}
	return out, nil
}

// ReadInteractions 读取 CSV 交互记录。按表头定位 user_id / book_id / rating 列。
func ReadInteractions(path string) ([]core.Interaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open interactions: %w", err)
	}
	defer f.Close()
	return ParseInteractions(f)
}

// ParseInteractions 从 reader 解析交互 CSV。评分无法解析的行静默跳过。
func ParseInteractions(r io.Reader) ([]core.Interaction, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ingest: interactions header: %w", err)
	}
	userCol, itemCol, ratingCol := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "user_id":
			userCol = i
		case "book_id":
			itemCol = i
		case "rating":
			ratingCol = i
		}
	}
	if userCol < 0 || itemCol < 0 || ratingCol < 0 {
		return nil, fmt.Errorf("ingest: interactions header missing columns: %v", header)
	}

	var out []core.Interaction
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read interactions: %w", err)
		}
		rating, err := strconv.Atoi(rec[ratingCol])
		if err != nil {
			continue
		}
		out = append(out, core.Interaction{
			UserID: rec[userCol],
			ItemID: rec[itemCol],
			Rating: rating,
		})
	}
	return out, nil
}

// ReadIDPairs 读取 CSV ID 对照表：每行 "交互空间ID,目录空间ID"。
func ReadIDPairs(path string) ([]core.IDPair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open id map: %w", err)
	}
	defer f.Close()
	return ParseIDPairs(f)
}

// ParseIDPairs 从 reader 解析 ID 对照表。
// 首行若含非数字字段视为表头跳过；字段数不足的行静默跳过。
func ParseIDPairs(r io.Reader) ([]core.IDPair, error) {
	var out []core.IDPair

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		fields := strings.SplitN(strings.TrimSpace(scanner.Text()), ",", 2)
		if len(fields) != 2 || fields[0] == "" || fields[1] == "" {
			continue
		}
		if first {
			first = false
			if !allDigits(fields[0]) || !allDigits(fields[1]) {
				continue // 表头
			}
		}
		out = append(out, core.IDPair{
			InteractionID: fields[0],
			CatalogID:     fields[1],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ingest: scan id map: %w", err)
	}
	return out, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
