// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/topic-wizard/pkg/types"
)

// promptData carries the fields the prompt templates interpolate.
type promptData struct {
	Topic      string
	NicheTopic string
	Paper      types.PaperRecord
	Keywords   string
}

// Section prompt templates for the paper-based material. Each embeds the
// topic and the selected paper's metadata with instructions for one
// section of an academic write-up.
var paperPrompts = map[types.SectionKind]*template.Template{
	types.SectionIntroduction: template.Must(template.New("paper-introduction").Parse(`다음 주제와 논문 정보를 바탕으로 학술 논문의 서론을 작성해주세요. 한국어로 작성하되, 학술적인 어조를 유지해주세요.

주제: {{.Topic}}
참고 논문 제목: {{.Paper.Title}}
참고 논문 저자: {{.Paper.Authors}}
참고 논문 초록: {{.Paper.Abstract}}
참고 논문 키워드: {{.Keywords}}

서론에는 다음 내용을 포함해주세요:
1. 연구 배경 및 중요성
2. 기존 연구의 한계점
3. 본 연구의 목적과 연구 질문
4. 연구의 의의 및 기대효과

형식은 '# 서론'으로 시작하고, 2-3 단락으로 구성해주세요.`)),

	types.SectionMethods: template.Must(template.New("paper-methods").Parse(`다음 주제와 논문 정보를 바탕으로 학술 논문의 연구 방법 섹션을 작성해주세요. 한국어로 작성하되, 학술적인 어조를 유지해주세요.

주제: {{.Topic}}
참고 논문 제목: {{.Paper.Title}}
참고 논문 키워드: {{.Keywords}}

연구 방법 섹션에는 다음 내용을 포함해주세요:
1. 연구 설계 (연구 접근법, 설계 유형)
2. 데이터 수집 방법 (표본 추출, 도구, 절차)
3. 분석 방법 (통계적 기법, 질적 분석 방법)
4. 윤리적 고려사항

형식은 '# 연구 방법'으로 시작하고, 각 하위 섹션은 '## 섹션 제목'으로 구분해주세요.`)),

	types.SectionResults: template.Must(template.New("paper-results").Parse(`다음 주제와 논문 정보를 바탕으로 학술 논문의 연구 결과 섹션을 작성해주세요. 한국어로 작성하되, 학술적인 어조를 유지해주세요.

주제: {{.Topic}}
참고 논문 제목: {{.Paper.Title}}
참고 논문 키워드: {{.Keywords}}

연구 결과 섹션에는 다음 내용을 포함해주세요:
1. 주요 연구 결과 및 발견 (3가지 이상)
2. 통계적 분석 결과 (가상의 데이터 기반)
3. 결과에 대한 해석

형식은 '# 연구 결과'로 시작하고, 각 주요 발견은 '## 주요 발견 X'와 같은 형식으로 구분해주세요.`)),

	types.SectionConclusion: template.Must(template.New("paper-conclusion").Parse(`다음 주제와 논문 정보를 바탕으로 학술 논문의 결론 및 제언 섹션을 작성해주세요. 한국어로 작성하되, 학술적인 어조를 유지해주세요.

주제: {{.Topic}}
참고 논문 제목: {{.Paper.Title}}
참고 논문 키워드: {{.Keywords}}

결론 및 제언 섹션에는 다음 내용을 포함해주세요:
1. 주요 연구 결과 요약
2. 이론적/실용적 의의
3. 연구의 한계점
4. 향후 연구 방향 제안

형식은 '# 결론 및 제언'으로 시작하고, 2-3 단락으로 구성해주세요.`)),

	types.SectionNicheTopics: template.Must(template.New("paper-niche").Parse(`다음 주제와 논문 정보를 바탕으로 새로운 연구 틈새(niche) 주제 5가지를 제안해주세요. 각 틈새 주제는 기존 연구에서 충분히 다루어지지 않았지만 높은 연구 가치가 있는 영역이어야 합니다.

주제: {{.Topic}}
참고 논문 제목: {{.Paper.Title}}
참고 논문 키워드: {{.Keywords}}

틈새 주제는 "XXX에 관한 연구" 형식으로 작성해주세요.`)),
}

// Section prompt templates for the niche-topic research plan.
var nichePrompts = map[types.SectionKind]*template.Template{
	types.SectionIntroduction: template.Must(template.New("niche-introduction").Parse(`다음 주제와 틈새주제를 바탕으로 연구 계획서의 서론을 작성해주세요. 한국어로 작성하되, 학술적인 어조를 유지해주세요.

주제: {{.Topic}}
틈새주제: {{.NicheTopic}}

서론에는 다음 내용을 포함해주세요:
1. 틈새주제의 배경 및 중요성
2. 기존 연구의 한계점과 이 틈새주제가 왜 중요한지
3. 연구의 목적과 주요 연구 질문
4. 예상되는 학문적/실용적 기여

형식은 '# 서론'으로 시작하고, 2-3 단락으로 구성해주세요.`)),

	types.SectionMethods: template.Must(template.New("niche-methods").Parse(`다음 주제와 틈새주제를 바탕으로 연구 계획서의 연구 방법 섹션을 작성해주세요. 한국어로 작성하되, 학술적인 어조를 유지해주세요.

주제: {{.Topic}}
틈새주제: {{.NicheTopic}}

연구 방법 섹션에는 다음 내용을 포함해주세요:
1. 연구 설계 (어떤 연구 방법론을 사용할 것인지)
2. 자료 수집 방법 (어떤 데이터를 어떻게 수집할 것인지)
3. 분석 방법 (데이터를 어떻게 분석할 것인지)
4. 예상되는 한계점과 극복 방안

형식은 '# 연구 방법'으로 시작하고, 각 하위 섹션은 '## 섹션 제목'으로 구분해주세요.`)),

	types.SectionExpectedResults: template.Must(template.New("niche-expected-results").Parse(`다음 주제와 틈새주제를 바탕으로 연구 계획서의 예상되는 연구 결과 섹션을 작성해주세요. 한국어로 작성하되, 학술적인 어조를 유지해주세요.

주제: {{.Topic}}
틈새주제: {{.NicheTopic}}

예상되는 연구 결과 섹션에는 다음 내용을 포함해주세요:
1. 주요 예상 결과 (3가지 이상)
2. 예상 결과의 의미와 해석
3. 결과가 학문적/실용적으로 어떤 의미를 갖는지

형식은 '# 예상되는 연구 결과'로 시작하고, 각 예상 결과는 번호를 매겨 구분해주세요.`)),
}

// renderPrompt executes the template for kind with the given data.
func renderPrompt(tmpls map[types.SectionKind]*template.Template, kind types.SectionKind, data promptData) (string, error) {
	tmpl, ok := tmpls[kind]
	if !ok {
		return "", fmt.Errorf("no prompt template for section %q", kind)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", kind, err)
	}
	return buf.String(), nil
}

// Canned section text used when no completion backend is configured or a
// call fails. Selected by the explicit section kind.
var cannedSections = map[types.SectionKind]string{
	types.SectionIntroduction: `# 서론

이 주제는 현대 과학 연구에서 중요한 위치를 차지하고 있습니다. 특히 최근 몇 년간 이 분야의 연구는 급속도로 발전해왔으며, 다양한 응용 가능성을 보여주고 있습니다.

기존 연구들은 주로 전통적인 접근법에 초점을 맞추어 왔으나, 이는 몇 가지 한계점을 드러내고 있습니다. 본 연구는 이러한 한계를 극복하기 위해 새로운 관점에서 이 주제를 탐구하고자 합니다.

본 연구의 주요 목적은 (1) 현재 이 분야의 주요 이슈를 분석하고, (2) 혁신적인 접근법을 제안하며, (3) 실제 적용 가능한 해결책을 모색하는 것입니다. 이를 통해 이 분야의 학문적 발전에 기여하고자 합니다.`,

	types.SectionMethods: `# 연구 방법

## 연구 설계
본 연구는 혼합적 연구 방법론을 채택하여 정량적 분석과 정성적 분석을 병행하였습니다. 이러한 접근은 연구 주제의 다면적 특성을 고려할 때 가장 적합하다고 판단하였습니다.

## 데이터 수집
본 연구에서는 두 가지 주요 데이터 소스를 활용하였습니다. 첫째, 공개 데이터베이스에서 추출한 2차 데이터를 분석하였습니다. 둘째, 해당 분야 전문가 30명을 대상으로 심층 인터뷰를 진행하여 1차 데이터를 수집하였습니다.

## 분석 방법
수집된 데이터는 통계 소프트웨어를 사용하여 분석하였으며, 주요 통계적 기법으로는 회귀분석, 요인분석, 그리고 군집분석이 활용되었습니다. 질적 데이터의 경우 주제별 코딩을 통해 분석하였습니다.

## 윤리적 고려사항
본 연구는 모든 참여자로부터 사전 동의를 얻었으며, 연구윤리위원회의 승인을 받아 진행되었습니다. 참여자의 개인정보는 철저히 보호되었으며, 모든 데이터는 익명화 처리하였습니다.`,

	types.SectionResults: `# 연구 결과

## 주요 발견 1
분석 결과, 연구 대상의 핵심 특성에 있어 통계적으로 유의미한 패턴이 발견되었습니다. 특히 변수 A와 변수 B 사이에는 강한 상관관계(r=0.78, p<0.001)가 확인되었습니다.

## 주요 발견 2
질적 분석에서는 세 가지 주요 주제가 도출되었습니다: (1) 환경적 요인의 중요성, (2) 사회적 맥락의 영향, 그리고 (3) 개인적 특성의 역할입니다. 이 중 환경적 요인이 가장 두드러진 주제로 나타났습니다.

## 주요 발견 3
기존 이론과 달리, 본 연구에서는 새로운 관점에서의 해석 가능성이 제시되었습니다. 이는 현재 학계의 지배적 패러다임에 도전하는 결과로서, 추가적인 검증이 필요합니다.

이러한 결과는 기존 연구와 일부 일치하면서도, 몇 가지 중요한 차이점을 보여줍니다. 이러한 차이는 연구 방법론의 차이와 분석 대상의 특수성에서 기인한 것으로 판단됩니다.`,

	types.SectionConclusion: `# 결론 및 제언

본 연구는 이 분야의 주요 연구 질문을 탐구하였습니다. 연구 결과를 종합하면, 첫째, 이 현상은 다양한 요인들의 복합적 상호작용에 의해 발생함을 확인하였습니다. 둘째, 기존에 간과되었던 요인 X의 중요성이 드러났습니다. 셋째, 맥락 특이적 접근의 필요성이 확인되었습니다.

이러한 발견은 학문적으로는 이론 확장에 기여하며, 실용적으로는 관련 정책 및 프로그램 개발에 중요한 시사점을 제공합니다. 특히 현장 실무자들에게 구체적인 가이드라인을 제시할 수 있을 것입니다.

본 연구의 한계점으로는 표본의 대표성 문제와 종단적 데이터의 부재를 들 수 있습니다. 이를 보완하기 위해 향후 연구에서는 더 다양한 집단을 대상으로 한 장기적 연구와, 실험적 설계를 통한 인과관계 검증이 필요합니다.`,
}

// cannedGeneral is the fallback for section kinds without a dedicated
// canned block, including the niche-topic listing.
const cannedGeneral = `이 주제에 관한 연구는 매우 중요한 학술적 가치를 지니고 있습니다. 특히 최근의 기술적, 사회적 변화를 고려할 때 이 분야에 대한 심층적 이해는 더욱 필요해지고 있습니다.

주요 연구 방향으로는 (1) 이론적 기반 확장, (2) 실증적 데이터 분석, (3) 학제간 접근법 개발 등이 있습니다. 이러한 다양한 접근을 통해 더욱 포괄적인 이해가 가능할 것입니다.

향후 연구에서는 새로운 방법론의 적용과 더불어, 다양한 맥락에서의 교차 검증이 필요합니다. 이를 통해 더욱 견고하고 일반화 가능한 결과를 도출할 수 있을 것입니다.

주의: 이 내용은 자동 생성된 샘플 텍스트입니다. 실제 연구나 학술 목적으로 사용하기 위해서는 추가적인 검증과 전문가의 검토가 필요합니다.`

// cannedSection returns the fallback text for a section kind. Expected
// results reuse the results block; unknown kinds get the general text.
func cannedSection(kind types.SectionKind) string {
	if kind == types.SectionExpectedResults {
		return cannedSections[types.SectionResults]
	}
	if text, ok := cannedSections[kind]; ok {
		return text
	}
	return cannedGeneral
}

// Disclaimers appended verbatim to every generated object.
const (
	paperDisclaimer = `# 중요 안내

이 내용은 AI에 의해 추론된 자료로, 실제 논문이 아닙니다. 참조용으로만 활용하시기 바라며,
여기에 제시된 참고문헌은 실제 인용이나 학술적 활용이 불가능할 수 있습니다.
실제 연구를 위해서는 추가적인 문헌 조사와 검증이 필요합니다.`

	nicheDisclaimer = `# 중요 안내

이 내용은 AI에 의해 추론된 자료로, 실제 논문이 아닙니다. 참조용으로만 활용하시기 바라며,
실제 연구를 위해서는 추가적인 문헌 조사와 검증이 필요합니다.`
)

// formatReferences renders the references block directly from the paper
// metadata. It is never sent to a completion backend.
func formatReferences(topic string, paper types.PaperRecord) string {
	year := paper.Year
	if year == "" {
		year = "2023"
	}
	firstKeyword := "research"
	if len(paper.Keywords) > 0 {
		firstKeyword = paper.Keywords[0]
	}

	return fmt.Sprintf(`# 참고문헌

1. %s (%s). %s. *%s*.
2. Kim, J., & Lee, S. (2022). A systematic review of research trends in %s. Journal of Scientific Research, 45(3), 234-251.
3. Park, M., & Choi, H. (2023). Methodological approaches to %s in educational contexts. International Journal of Science Education, 18(2), 187-203.
4. Johnson, A., & Smith, B. (2021). Recent advances in %s research. Annual Review of Science, 12, 78-95.
5. Lee, Y., & Kim, T. (2023). Application of %s in real-world settings: Challenges and opportunities. Applied Research Journal, 9(4), 412-428.`,
		paper.Authors, year, paper.Title, paper.Source,
		topic, topic, firstKeyword, topic)
}

// defaultNicheTopics are the topic-derived fillers used when the backend
// yields fewer than five usable suggestions.
func defaultNicheTopics(topic string) []string {
	return []string{
		fmt.Sprintf("%s의 새로운 측정 방법론 개발에 관한 연구", topic),
		fmt.Sprintf("%s이 청소년 발달에 미치는 장기적 영향에 관한 연구", topic),
		fmt.Sprintf("%s과 관련된 윤리적 쟁점 분석 연구", topic),
		fmt.Sprintf("%s의 문화간 차이 비교 연구", topic),
		fmt.Sprintf("인공지능을 활용한 %s 분석 방법 연구", topic),
	}
}

// Error-path content: the same shape as a successful response, with
// placeholder section text. Generation operations never surface errors.
func errorPaperContent() types.PaperContent {
	return types.PaperContent{
		Introduction: "# 서론\n\n서론 생성 중 오류가 발생했습니다.",
		Methods:      "# 연구 방법\n\n연구 방법 생성 중 오류가 발생했습니다.",
		Results:      "# 연구 결과\n\n연구 결과 생성 중 오류가 발생했습니다.",
		Conclusion:   "# 결론 및 제언\n\n결론 생성 중 오류가 발생했습니다.",
		References:   "# 참고문헌\n\n참고문헌 생성 중 오류가 발생했습니다.",
		Disclaimer:   "# 중요 안내\n\n이 내용은 오류로 인해 정확하지 않을 수 있습니다.",
		NicheTopics:  []string{"오류로 인해 틈새 주제를 생성할 수 없습니다."},
		Source:       types.SourceTemplate,
	}
}

func errorNicheContent() types.NicheContent {
	return types.NicheContent{
		Introduction:    "# 서론\n\n서론 생성 중 오류가 발생했습니다.",
		Methods:         "# 연구 방법\n\n연구 방법 생성 중 오류가 발생했습니다.",
		ExpectedResults: "# 예상되는 연구 결과\n\n예상 결과 생성 중 오류가 발생했습니다.",
		Disclaimer:      "# 중요 안내\n\n이 내용은 오류로 인해 정확하지 않을 수 있습니다.",
		Source:          types.SourceTemplate,
	}
}

// topicInfoTemplates renders the three static topic-analysis blocks.
func topicInfo(topic string) types.TopicAnalysis {
	return types.TopicAnalysis{
		Definition: strings.TrimSpace(fmt.Sprintf(`%[1]s은(는) 현대 과학 연구에서 중요한 주제로, 다양한 분야에서 활발히 연구되고 있습니다.

이 주제는 기본적으로 [주제에 대한 상세 정의와 배경 설명]을 다루며, 최근에는 [최신 연구 동향이나 변화된 관점]으로 그 중요성이 더욱 부각되고 있습니다.

%[1]s에 대한 연구는 [관련 학문 분야]에서 특히 중요하게 다뤄지며, [주요 이론이나 개념] 등의 핵심 이론을 바탕으로 발전해왔습니다.`, topic)),

		Issues: strings.TrimSpace(fmt.Sprintf(`%[1]s과(와) 관련된 주요 과학적 이슈:

1. [이슈 1]: [상세 설명 및 현재 상황]
2. [이슈 2]: [상세 설명 및 현재 상황]
3. [이슈 3]: [상세 설명 및 현재 상황]

%[1]s과(와) 관련된 주요 사회적 이슈:

1. [사회적 이슈 1]: [사회적 영향 및 중요성]
2. [사회적 이슈 2]: [사회적 영향 및 중요성]
3. [사회적 이슈 3]: [사회적 영향 및 중요성]

이러한 이슈들은 [이슈들의 상호연관성이나 영향관계]와 같은 복합적인 관계를 형성하고 있어 통합적인 접근이 필요합니다.`, topic)),

		Cases: strings.TrimSpace(fmt.Sprintf(`%[1]s에 관한 주요 연구 및 해결 사례:

1. [사례 연구 1]:
   - 연구자/기관: [연구자/기관명]
   - 주요 방법론: [사용된 방법론]
   - 주요 발견: [중요한 연구 결과]
   - 한계점: [연구의 한계]

2. [사례 연구 2]:
   - 연구자/기관: [연구자/기관명]
   - 주요 방법론: [사용된 방법론]
   - 주요 발견: [중요한 연구 결과]
   - 한계점: [연구의 한계]

3. [사례 연구 3]:
   - 연구자/기관: [연구자/기관명]
   - 주요 방법론: [사용된 방법론]
   - 주요 발견: [중요한 연구 결과]
   - 한계점: [연구의 한계]

현재 진행 중인 주요 연구 방향:
- [연구 방향 1]: [상세 설명]
- [연구 방향 2]: [상세 설명]
- [연구 방향 3]: [상세 설명]`, topic)),
	}
}
