package exiftag

import (
	"fmt"

	"github.com/rwcarlsen/goexif/exif"
)

// Directory identifiers used as container section labels. Directories
// chained after IFD1 are labelled IFD2, IFD3 and so on.
const (
	SectionIFD0    = "IFD0"
	SectionIFD1    = "IFD1"
	SectionExif    = "Exif"
	SectionGPS     = "GPS"
	SectionInterop = "Interoperability"
)

// Pointer tags linking a directory to its sub-IFDs.
const (
	tagExifPointer    = 0x8769
	tagGPSPointer     = 0x8825
	tagInteropPointer = 0xA005
)

// subDirectories maps each pointer tag to the section it leads to.
var subDirectories = map[uint16]string{
	tagExifPointer:    SectionExif,
	tagGPSPointer:     SectionGPS,
	tagInteropPointer: SectionInterop,
}

// imageFields names the tags of the primary image directories and the Exif
// sub-IFD, which share one id space.
var imageFields = map[uint16]exif.FieldName{
	0x0100: exif.ImageWidth,
	0x0101: exif.ImageLength,
	0x0102: exif.BitsPerSample,
	0x0103: exif.Compression,
	0x0106: exif.PhotometricInterpretation,
	0x010E: exif.ImageDescription,
	0x010F: exif.Make,
	0x0110: exif.Model,
	0x0112: exif.Orientation,
	0x0115: exif.SamplesPerPixel,
	0x011A: exif.XResolution,
	0x011B: exif.YResolution,
	0x011C: exif.PlanarConfiguration,
	0x0128: exif.ResolutionUnit,
	0x0131: exif.Software,
	0x0132: exif.DateTime,
	0x013B: exif.Artist,
	0x0201: exif.ThumbJPEGInterchangeFormat,
	0x0202: exif.ThumbJPEGInterchangeFormatLength,
	0x0212: exif.YCbCrSubSampling,
	0x0213: exif.YCbCrPositioning,
	0x8298: exif.Copyright,
	0x829A: exif.ExposureTime,
	0x829D: exif.FNumber,
	0x8769: exif.ExifIFDPointer,
	0x8822: exif.ExposureProgram,
	0x8824: exif.SpectralSensitivity,
	0x8825: exif.GPSInfoIFDPointer,
	0x8827: exif.ISOSpeedRatings,
	0x8828: exif.OECF,
	0x9000: exif.ExifVersion,
	0x9003: exif.DateTimeOriginal,
	0x9004: exif.DateTimeDigitized,
	0x9101: exif.ComponentsConfiguration,
	0x9102: exif.CompressedBitsPerPixel,
	0x9201: exif.ShutterSpeedValue,
	0x9202: exif.ApertureValue,
	0x9203: exif.BrightnessValue,
	0x9204: exif.ExposureBiasValue,
	0x9205: exif.MaxApertureValue,
	0x9206: exif.SubjectDistance,
	0x9207: exif.MeteringMode,
	0x9208: exif.LightSource,
	0x9209: exif.Flash,
	0x920A: exif.FocalLength,
	0x9214: exif.SubjectArea,
	0x927C: exif.MakerNote,
	0x9286: exif.UserComment,
	0x9290: exif.SubSecTime,
	0x9291: exif.SubSecTimeOriginal,
	0x9292: exif.SubSecTimeDigitized,
	0x9C9B: exif.XPTitle,
	0x9C9C: exif.XPComment,
	0x9C9D: exif.XPAuthor,
	0x9C9E: exif.XPKeywords,
	0x9C9F: exif.XPSubject,
	0xA000: exif.FlashpixVersion,
	0xA001: exif.ColorSpace,
	0xA002: exif.PixelXDimension,
	0xA003: exif.PixelYDimension,
	0xA004: exif.RelatedSoundFile,
	0xA005: exif.InteroperabilityIFDPointer,
	0xA20B: exif.FlashEnergy,
	0xA20C: exif.SpatialFrequencyResponse,
	0xA20E: exif.FocalPlaneXResolution,
	0xA20F: exif.FocalPlaneYResolution,
	0xA210: exif.FocalPlaneResolutionUnit,
	0xA214: exif.SubjectLocation,
	0xA215: exif.ExposureIndex,
	0xA217: exif.SensingMethod,
	0xA300: exif.FileSource,
	0xA301: exif.SceneType,
	0xA302: exif.CFAPattern,
	0xA401: exif.CustomRendered,
	0xA402: exif.ExposureMode,
	0xA403: exif.WhiteBalance,
	0xA404: exif.DigitalZoomRatio,
	0xA405: exif.FocalLengthIn35mmFilm,
	0xA406: exif.SceneCaptureType,
	0xA407: exif.GainControl,
	0xA408: exif.Contrast,
	0xA409: exif.Saturation,
	0xA40A: exif.Sharpness,
	0xA40B: exif.DeviceSettingDescription,
	0xA40C: exif.SubjectDistanceRange,
	0xA420: exif.ImageUniqueID,
	0xA433: exif.LensMake,
	0xA434: exif.LensModel,
}

var gpsFields = map[uint16]exif.FieldName{
	0x00: exif.GPSVersionID,
	0x01: exif.GPSLatitudeRef,
	0x02: exif.GPSLatitude,
	0x03: exif.GPSLongitudeRef,
	0x04: exif.GPSLongitude,
	0x05: exif.GPSAltitudeRef,
	0x06: exif.GPSAltitude,
	0x07: exif.GPSTimeStamp,
	0x08: exif.GPSSatelites,
	0x09: exif.GPSStatus,
	0x0A: exif.GPSMeasureMode,
	0x0B: exif.GPSDOP,
	0x0C: exif.GPSSpeedRef,
	0x0D: exif.GPSSpeed,
	0x0E: exif.GPSTrackRef,
	0x0F: exif.GPSTrack,
	0x10: exif.GPSImgDirectionRef,
	0x11: exif.GPSImgDirection,
	0x12: exif.GPSMapDatum,
	0x13: exif.GPSDestLatitudeRef,
	0x14: exif.GPSDestLatitude,
	0x15: exif.GPSDestLongitudeRef,
	0x16: exif.GPSDestLongitude,
	0x17: exif.GPSDestBearingRef,
	0x18: exif.GPSDestBearing,
	0x19: exif.GPSDestDistanceRef,
	0x1A: exif.GPSDestDistance,
	0x1B: exif.GPSProcessingMethod,
	0x1C: exif.GPSAreaInformation,
	0x1D: exif.GPSDateStamp,
	0x1E: exif.GPSDifferential,
}

var interopFields = map[uint16]exif.FieldName{
	0x0001: exif.InteroperabilityIndex,
}

// fieldName labels a tag id read from the given section. Ids without a
// known name are labelled by their hex value, e.g. "Tag(0xc4a5)".
func fieldName(section string, id uint16) exif.FieldName {
	table := imageFields
	switch section {
	case SectionGPS:
		table = gpsFields
	case SectionInterop:
		table = interopFields
	}
	if name, ok := table[id]; ok {
		return name
	}
	return exif.FieldName(fmt.Sprintf("Tag(0x%04x)", id))
}

// chainSection labels the n-th directory of the primary IFD chain.
func chainSection(n int) string {
	return fmt.Sprintf("IFD%d", n)
}
