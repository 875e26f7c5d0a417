package booking

import "strings"

// Meal は機内食の種類を表す
type Meal string

const (
	MealNone       Meal = ""
	MealStandard   Meal = "standard"
	MealLight      Meal = "light"
	MealVegetarian Meal = "vegetarian"
	MealVegan      Meal = "vegan"
)

// MealCancelChoice は機内食選択を取りやめる入力
const MealCancelChoice = "X"

// mealChoices は選択番号（1〜4）と機内食の対応
var mealChoices = map[string]Meal{
	"1": MealStandard,
	"2": MealLight,
	"3": MealVegetarian,
	"4": MealVegan,
}

// SelectableMeals は選択番号順の機内食一覧
var SelectableMeals = []Meal{MealStandard, MealLight, MealVegetarian, MealVegan}

// ParseMealChoice は選択番号（"1"〜"4"）または機内食名を Meal に変換する
// 取消入力 "X" は呼び出し側で IsMealCancel により先に判定すること
func ParseMealChoice(choice string) (Meal, error) {
	c := strings.TrimSpace(choice)
	if m, ok := mealChoices[c]; ok {
		return m, nil
	}
	m := Meal(strings.ToLower(c))
	if m.IsSelectable() {
		return m, nil
	}
	return MealNone, ErrInvalidMealChoice
}

// IsMealCancel は入力が取消指定かを返す
func IsMealCancel(choice string) bool {
	return strings.EqualFold(strings.TrimSpace(choice), MealCancelChoice)
}

// IsSelectable は選択可能な4種類のいずれかかを返す
func (m Meal) IsSelectable() bool {
	switch m {
	case MealStandard, MealLight, MealVegetarian, MealVegan:
		return true
	}
	return false
}

// Label は表示用の名称を返す
func (m Meal) Label() string {
	switch m {
	case MealStandard:
		return "Standard Meal"
	case MealLight:
		return "Light Meal"
	case MealVegetarian:
		return "Vegetarian Meal"
	case MealVegan:
		return "Vegan Meal"
	}
	return "Not selected"
}
