// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package papers searches paper records in the internal dataset and in
// external scholarly APIs, and merges the two result sets.
package papers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/topic-wizard/pkg/types"
)

// builtinSample is the dataset used when no internal papers file exists.
var builtinSample = []types.PaperRecord{
	{
		Title:    "광촉매를 이용한 미세플라스틱 분해 연구",
		Authors:  "김지원, 이하늘",
		Year:     "2023",
		Abstract: "본 연구는 TiO2 기반 광촉매를 활용하여 해양 미세플라스틱을 효과적으로 분해할 수 있는 방법을 탐구하였다.",
		Source:   "제65회 한국과학전람회",
		Keywords: []string{"광촉매", "미세플라스틱", "환경오염", "해양생태계"},
		Type:     types.ProvenanceInternal,
	},
	{
		Title:    "기후변화가 제주도 감귤 생산에 미치는 영향 분석",
		Authors:  "박민준, 정소율",
		Year:     "2022",
		Abstract: "제주도 지역의 10년간 기후 데이터와 감귤 생산량 데이터를 분석하여 온도 상승이 과실 품질과 수확량에 미치는 영향을 조사하였다.",
		Source:   "제64회 전국과학전람회",
		Keywords: []string{"기후변화", "농업", "감귤", "생산량 분석"},
		Type:     types.ProvenanceInternal,
	},
	{
		Title:    "머신러닝을 활용한 식물 질병 조기 진단 시스템 개발",
		Authors:  "최준호, 이민지",
		Year:     "2023",
		Abstract: "컴퓨터 비전과 딥러닝 기술을 활용하여 작물 잎의 이미지만으로 질병을 조기에 진단할 수 있는 모바일 애플리케이션을 개발하였다.",
		Source:   "2023 청소년과학탐구대회",
		Keywords: []string{"머신러닝", "식물병리학", "스마트팜", "컴퓨터 비전"},
		Type:     types.ProvenanceInternal,
	},
}

// Store holds the internal paper list, loaded once at construction.
type Store struct {
	records []types.PaperRecord
}

// NewStore loads the internal paper list from cfg.InternalDBPath. The
// file is parsed as YAML when it carries a .yaml or .yml extension, as
// JSON otherwise. A missing file selects the built-in sample set; an
// unreadable or unparsable file is an error.
func NewStore(cfg types.SearchConfig) (*Store, error) {
	data, err := os.ReadFile(cfg.InternalDBPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{records: builtinSample}, nil
		}
		return nil, fmt.Errorf("reading internal papers file: %w", err)
	}

	var records []types.PaperRecord
	switch filepath.Ext(cfg.InternalDBPath) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing internal papers file: %w", err)
	}
	return &Store{records: records}, nil
}

// Records returns the loaded internal paper list.
func (s *Store) Records() []types.PaperRecord {
	return s.records
}

// Search scans the internal list for records whose title or abstract
// contains the topic or any keyword as a substring, or whose keyword
// list contains a keyword exactly. Matching is case-insensitive; results
// keep source order and are unranked. An empty topic matches every
// record.
func (s *Store) Search(topic string, keywords []string) []types.PaperRecord {
	topicLower := strings.ToLower(topic)
	keywordsLower := make([]string, len(keywords))
	for i, k := range keywords {
		keywordsLower[i] = strings.ToLower(k)
	}

	var results []types.PaperRecord
	for _, p := range s.records {
		if matches(p, topicLower, keywordsLower) {
			results = append(results, p)
		}
	}
	return results
}

func matches(p types.PaperRecord, topicLower string, keywordsLower []string) bool {
	titleLower := strings.ToLower(p.Title)
	abstractLower := strings.ToLower(p.Abstract)

	if strings.Contains(titleLower, topicLower) || strings.Contains(abstractLower, topicLower) {
		return true
	}
	for _, k := range keywordsLower {
		if strings.Contains(titleLower, k) || strings.Contains(abstractLower, k) {
			return true
		}
	}
	for _, pk := range p.Keywords {
		pkLower := strings.ToLower(pk)
		for _, k := range keywordsLower {
			if pkLower == k {
				return true
			}
		}
	}
	return false
}
