package settings

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/shopspring/decimal"
)

// Group est un struct de settings. Chaque champ exporté est stocké sous la
// clé "<prefix>.<champ>" en minuscules.
type Group interface {
	SettingPrefix() string
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// Key renvoie la clé de stockage d'un champ du groupe
func Key(g Group, field string) string {
	return normalize(g.SettingPrefix() + "." + field)
}

// Fields liste les champs exportés du groupe, dans l'ordre de déclaration
func Fields(g Group) []string {
	v, err := structValue(g)
	if err != nil {
		return nil
	}
	t := v.Type()
	fields := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			fields = append(fields, t.Field(i).Name)
		}
	}
	return fields
}

func structValue(g Group) (reflect.Value, error) {
	v := reflect.ValueOf(g)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("settings: %T doit être un pointeur vers un struct", g)
	}
	return v.Elem(), nil
}

func field(g Group, name string) (reflect.Value, error) {
	v, err := structValue(g)
	if err != nil {
		return reflect.Value{}, err
	}
	f, ok := v.Type().FieldByName(name)
	if !ok || !f.IsExported() {
		return reflect.Value{}, fmt.Errorf("settings: %T n'a pas de champ %q", g, name)
	}
	return v.FieldByIndex(f.Index), nil
}

// LoadSetting remplit g pour la boutique. Les champs absents gardent leur
// valeur actuelle, ce qui permet de passer un struct pré-rempli de défauts.
func (s *Service) LoadSetting(ctx context.Context, g Group, storeID int) error {
	v, err := structValue(g)
	if err != nil {
		return err
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		raw, err := s.GetByKey(ctx, Key(g, f.Name), storeID, true)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := decodeValue(v.Field(i), raw); err != nil {
			return fmt.Errorf("settings: %s: %w", Key(g, f.Name), err)
		}
	}
	return nil
}

// SaveSetting enregistre tous les champs du groupe, puis vide le cache une fois
func (s *Service) SaveSetting(ctx context.Context, g Group, storeID int) error {
	for _, name := range Fields(g) {
		if err := s.SaveSettingField(ctx, g, name, storeID, false); err != nil {
			return err
		}
	}
	return s.ClearCache(ctx)
}

// SaveSettingField enregistre un seul champ du groupe
func (s *Service) SaveSettingField(ctx context.Context, g Group, name string, storeID int, clearCache bool) error {
	f, err := field(g, name)
	if err != nil {
		return err
	}
	raw, err := encodeValue(f)
	if err != nil {
		return fmt.Errorf("settings: %s: %w", Key(g, name), err)
	}
	return s.SetSetting(ctx, Key(g, name), raw, storeID, clearCache)
}

// DeleteSettingField supprime la surcharge d'un champ pour une boutique
func (s *Service) DeleteSettingField(ctx context.Context, g Group, name string, storeID int, clearCache bool) error {
	if _, err := field(g, name); err != nil {
		return err
	}
	return s.DeleteSetting(ctx, Key(g, name), storeID, clearCache)
}

// SettingFieldExists indique si le champ a une valeur propre à la boutique
func (s *Service) SettingFieldExists(ctx context.Context, g Group, name string, storeID int) (bool, error) {
	if _, err := field(g, name); err != nil {
		return false, err
	}
	return s.SettingExists(ctx, Key(g, name), storeID)
}

// DeleteSettings supprime le groupe entier, pour toutes les boutiques
func (s *Service) DeleteSettings(ctx context.Context, g Group) error {
	rows, err := s.repo.All(ctx)
	if err != nil {
		return fmt.Errorf("chargement des settings: %w", err)
	}
	keys := make(map[string]bool)
	for _, name := range Fields(g) {
		keys[Key(g, name)] = true
	}
	for _, row := range rows {
		if !keys[normalize(row.Name)] {
			continue
		}
		if err := s.DeleteSetting(ctx, row.Name, row.StoreID, false); err != nil {
			return err
		}
	}
	return s.ClearCache(ctx)
}

func decodeValue(dst reflect.Value, raw string) error {
	if dst.Type() == decimalType {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(d))
		return nil
	}

	switch dst.Kind() {
	case reflect.String:
		dst.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(raw, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetFloat(n)
	default:
		return fmt.Errorf("type %s non supporté", dst.Type())
	}
	return nil
}

func encodeValue(src reflect.Value) (string, error) {
	if src.Type() == decimalType {
		return src.Interface().(decimal.Decimal).String(), nil
	}

	switch src.Kind() {
	case reflect.String:
		return src.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(src.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(src.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(src.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(src.Float(), 'f', -1, src.Type().Bits()), nil
	default:
		return "", fmt.Errorf("type %s non supporté", src.Type())
	}
}
