package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Gruvbox Dark color palette (warm, muted, easy on eyes)
const (
	colorReset  = "\x1b[0m"
	colorBold   = "\x1b[1m"
	colorFg     = "\x1b[38;5;223m" // Soft cream (#ebdbb2)
	colorAqua   = "\x1b[38;5;108m" // Muted cyan-green (#8ec07c)
	colorOrange = "\x1b[38;5;208m" // Warm orange (#fe8019)
	colorYellow = "\x1b[38;5;214m" // Soft yellow (#fabd2f)
	colorBlue   = "\x1b[38;5;109m" // Soft blue (#83a598)
	colorPurple = "\x1b[38;5;175m" // Muted purple (#d3869b)
	colorRed    = "\x1b[38;5;167m" // Warm red (#fb4934)
	colorGray   = "\x1b[38;5;245m"
	colorRedBg  = "\x1b[48;5;88m"
	colorYelBg  = "\x1b[48;5;58m"
)

var bufferPool = buffer.NewPool()

// minimalEncoder implements a calm, compact console encoder
// Format: "13:04:35  DEBUG  w.gen  Writing interface  interface=order file=api/order.wit"
type minimalEncoder struct {
	zapcore.Encoder // Embed a base encoder for fields added via With()
	color           bool
	context         []zapcore.Field
}

func newMinimalEncoder(color bool) *minimalEncoder {
	// Base JSON encoder is only used to satisfy zapcore.Encoder
	baseEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())

	return &minimalEncoder{
		Encoder: baseEncoder,
		color:   color,
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	context := make([]zapcore.Field, len(enc.context))
	copy(context, enc.context)
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		color:   enc.color,
		context: context,
	}
}

// AddString and friends are reached through logger.With(); string, int64,
// bool and reflected fields are kept and printed on every entry of the child logger.
func (enc *minimalEncoder) AddString(key, value string) {
	enc.context = append(enc.context, zap.String(key, value))
}

func (enc *minimalEncoder) AddInt64(key string, value int64) {
	enc.context = append(enc.context, zap.Int64(key, value))
}

func (enc *minimalEncoder) AddBool(key string, value bool) {
	enc.context = append(enc.context, zap.Bool(key, value))
}

func (enc *minimalEncoder) AddReflected(key string, value interface{}) error {
	enc.context = append(enc.context, zap.Any(key, value))
	return nil
}

func (enc *minimalEncoder) paint(color, s string) string {
	if !enc.color || s == "" {
		return s
	}
	return color + s + colorReset
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := bufferPool.Get()

	final.AppendString(enc.paint(colorAqua, ent.Time.Format("15:04:05")))

	// Level: only shown when it is not INFO
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(enc.levelString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(enc.paint(colorOrange, abbreviateName(ent.LoggerName)))
	}

	final.AppendString("  ")
	final.AppendString(enc.paint(colorFg, ent.Message))

	all := make([]zapcore.Field, 0, len(enc.context)+len(fields))
	all = append(all, enc.context...)
	all = append(all, fields...)
	if rendered := enc.renderFields(all); rendered != "" {
		final.AppendString("  ")
		final.AppendString(rendered)
	}

	final.AppendString("\n")
	return final, nil
}

func (enc *minimalEncoder) levelString(level zapcore.Level) string {
	name := level.CapitalString()
	if !enc.color {
		return name
	}
	switch level {
	case zapcore.DebugLevel:
		return colorGray + name + colorReset
	case zapcore.WarnLevel:
		return colorBold + colorYelBg + colorYellow + name + colorReset
	default:
		return colorBold + colorRedBg + colorRed + name + colorReset
	}
}

// renderFields prints every entry field as key=value in the order it was logged.
func (enc *minimalEncoder) renderFields(fields []zapcore.Field) string {
	if len(fields) == 0 {
		return ""
	}

	values := zapcore.NewMapObjectEncoder()
	order := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		field.AddTo(values)
		if !seen[field.Key] {
			seen[field.Key] = true
			order = append(order, field.Key)
		}
	}

	parts := make([]string, 0, len(order))
	for _, key := range order {
		value, ok := values.Fields[key]
		if !ok {
			continue
		}
		parts = append(parts, enc.paint(colorBlue, key)+"="+enc.paint(valueColor(key), formatValue(value)))
	}
	return strings.Join(parts, " ")
}

func valueColor(key string) string {
	switch key {
	case FieldError:
		return colorRed
	case FieldCount:
		return colorPurple
	default:
		return colorFg
	}
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []interface{}:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = formatValue(item)
		}
		return "[" + strings.Join(items, " ") + "]"
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]string, len(keys))
		for i, k := range keys {
			items[i] = k + ":" + formatValue(v[k])
		}
		return "{" + strings.Join(items, " ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// abbreviateName shortens component names: witgen.gen -> w.gen
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}
