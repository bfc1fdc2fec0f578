package compile

import "arvoren.net/strongxml/model"

// builtinKinds maps the supported XML Schema built-in types to primitive
// value spaces. Built-ins absent from the table are outside the subset;
// referencing one fails compilation rather than degrading to a string.
var builtinKinds = map[string]model.Primitive{
	"anySimpleType":    model.String,
	"string":           model.String,
	"normalizedString": model.String,
	"token":            model.String,
	"language":         model.String,
	"Name":             model.String,
	"NCName":           model.String,
	"NMTOKEN":          model.String,
	"ID":               model.String,
	"IDREF":            model.String,
	"QName":            model.String,
	"anyURI":           model.String,

	"boolean": model.Bool,

	"int":                model.Int,
	"integer":            model.Int,
	"short":              model.Int,
	"byte":               model.Int,
	"nonNegativeInteger": model.Int,
	"nonPositiveInteger": model.Int,
	"positiveInteger":    model.Int,
	"negativeInteger":    model.Int,
	"unsignedInt":        model.Int,
	"unsignedShort":      model.Int,
	"unsignedByte":       model.Int,

	"long":         model.Long,
	"unsignedLong": model.Long,

	"dateTime": model.Timestamp,
}
