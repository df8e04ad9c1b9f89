package llm

import "strings"

// Persona labels are free text chosen by the child, so the pairing is
// classified by substring.
var (
	elderRoles = []string{
		"선생님", "의사", "간호사", "엄마", "아빠", "할머니", "할아버지",
		"경찰", "소방관", "선장", "기장", "원장", "사장", "어른", "부모",
	}
	juniorRoles = []string{"학생", "환자", "아이", "어린이", "동생", "아기", "손님", "손자", "손녀", "제자"}
	staffRoles  = []string{"점원", "직원", "가게", "종업원", "요리사", "안내원", "승무원", "약사"}
)

func hasAny(label string, set []string) bool {
	for _, s := range set {
		if strings.Contains(label, s) {
			return true
		}
	}
	return false
}

const (
	registerCasual = "너의 역할이 상대보다 윗사람이거나 친구 사이이므로, 자연스러운 반말만 사용해. '~요', '~습니다' 같은 존댓말은 쓰지 마."
	registerPolite = "상대가 너보다 윗사람이거나 손님이므로, 공손한 존댓말('~요', '~습니다')만 사용해. 반말은 쓰지 마."
)

// registerRule picks the speech level the bot persona uses toward the
// child's persona. Elders speak casually to juniors; staff and juniors speak
// politely. Peers fall back to casual speech.
func registerRule(botRole, userRole string) string {
	botRole, userRole = strings.TrimSpace(botRole), strings.TrimSpace(userRole)
	switch {
	case hasAny(botRole, staffRoles):
		return registerPolite
	case hasAny(botRole, juniorRoles) && hasAny(userRole, elderRoles):
		return registerPolite
	case hasAny(botRole, elderRoles) && hasAny(userRole, elderRoles):
		return registerPolite
	default:
		return registerCasual
	}
}
