package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// QSet is the question set a widget is initialised from. Only the fields the
// exercise reads are modelled; everything else in the source document is ignored.
type QSet struct {
	Items   []QSetItem  `json:"items" validate:"required,min=1,dive"`
	Options QSetOptions `json:"options"`
}

type QSetOptions struct {
	Legend []LegendEntry `json:"legend"`
}

type QSetItem struct {
	Questions []QSetText      `json:"questions" validate:"required,min=1"`
	Answers   []QSetAnswer    `json:"answers" validate:"required,min=1,dive"`
	Options   QSetItemOptions `json:"options"`
}

type QSetItemOptions struct {
	DisplayPref datatypes.JSON `json:"displayPref,omitempty"`
}

type QSetText struct {
	Text string `json:"text"`
}

type QSetAnswer struct {
	Text    string            `json:"text"`
	Options QSetAnswerOptions `json:"options"`
}

type QSetAnswerOptions struct {
	Phrase []QSetToken `json:"phrase"`
}

// QSetToken is a phrase token as authored in the question set. Authored
// fields other than value and legend are kept in Extra.
type QSetToken struct {
	Value  string         `json:"value"`
	Legend string         `json:"legend"`
	Extra  datatypes.JSON `json:"-"`
}

func (t QSetToken) MarshalJSON() ([]byte, error) {
	type plain QSetToken
	own, err := json.Marshal(plain(t))
	if err != nil {
		return nil, err
	}
	return mergeFields(t.Extra, own)
}

func (t *QSetToken) UnmarshalJSON(data []byte) error {
	type plain QSetToken
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := extraFields(data, "value", "legend")
	if err != nil {
		return err
	}
	p.Extra = extra
	*t = QSetToken(p)
	return nil
}
