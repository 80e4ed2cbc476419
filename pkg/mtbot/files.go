package mtbot

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/telegram/uploader"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"ex-mtbot/internal/codec"
	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

// upload streams file content to Telegram and returns the uploaded handle.
func (c *Client) upload(ctx context.Context, file botapi.InputFile) (tg.InputFileClass, error) {
	name := file.Name
	if name == "" {
		name = "file"
	}

	up := uploader.NewUploader(c.api)
	if file.Size > 0 {
		uploaded, err := up.Upload(ctx, uploader.NewUpload(name, file.Reader, file.Size))
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", name, err)
		}
		return uploaded, nil
	}

	uploaded, err := up.FromReader(ctx, name, file.Reader)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", name, err)
	}

	return uploaded, nil
}

// mediaSource resolves an outgoing file reference, uploading content when
// the caller supplied a reader.
func (c *Client) mediaSource(ctx context.Context, file botapi.InputFile, thumb *botapi.InputFile) (mapper.MediaSource, error) {
	var source mapper.MediaSource
	switch {
	case file.FileID != "":
		decoded, err := codec.DecodeFileID(file.FileID)
		if err != nil {
			return mapper.MediaSource{}, fmt.Errorf("decode file id: %w", err)
		}
		source.FileID = &decoded
	case file.URL != "":
		source.URL = file.URL
	case file.Reader != nil:
		uploaded, err := c.upload(ctx, file)
		if err != nil {
			return mapper.MediaSource{}, err
		}
		source.Uploaded = uploaded
		source.FileName = file.Name
		source.MimeType = mimeByName(file.Name)
	default:
		return mapper.MediaSource{}, fmt.Errorf("%w: empty input file", botapi.ErrInvalidParams)
	}

	if thumb != nil && thumb.Reader != nil && source.Uploaded != nil {
		uploaded, err := c.upload(ctx, *thumb)
		if err != nil {
			return mapper.MediaSource{}, fmt.Errorf("upload thumbnail: %w", err)
		}
		source.Thumb = uploaded
	}

	return source, nil
}

func (c *Client) inputMedia(
	ctx context.Context,
	file botapi.InputFile,
	thumb *botapi.InputFile,
	attrs mapper.MediaAttributes,
) (tg.InputMediaClass, error) {
	source, err := c.mediaSource(ctx, file, thumb)
	if err != nil {
		return nil, err
	}
	media, err := mapper.InputMedia(source, attrs)
	if err != nil {
		return nil, fmt.Errorf("build input media: %w", err)
	}

	return media, nil
}

func mimeByName(name string) string {
	if name == "" {
		return ""
	}
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if index := strings.IndexByte(mimeType, ';'); index >= 0 {
		mimeType = mimeType[:index]
	}

	return mimeType
}

// GetFile describes a file so it can be downloaded with DownloadFile.
func (c *Client) GetFile(ctx context.Context, params botapi.GetFileParams) (botapi.File, error) {
	if err := params.Validate(); err != nil {
		return botapi.File{}, fmt.Errorf("get file validate: %w", err)
	}

	id, err := codec.DecodeFileID(params.FileID)
	if err != nil {
		return botapi.File{}, fmt.Errorf("get file: %w", err)
	}
	unique := id.UniqueID()

	return botapi.File{
		FileID:       params.FileID,
		FileUniqueID: unique,
		FileSize:     id.Size,
		FilePath:     id.Kind.String() + "/" + unique,
	}, nil
}

// DownloadFile streams the content of file to w.
func (c *Client) DownloadFile(ctx context.Context, file botapi.File, w io.Writer) error {
	if w == nil {
		return fmt.Errorf("%w: nil writer", botapi.ErrInvalidParams)
	}
	id, err := codec.DecodeFileID(file.FileID)
	if err != nil {
		return fmt.Errorf("download file: %w", err)
	}

	return c.invoke(ctx, "downloadFile", func(ctx context.Context) error {
		err := c.download(ctx, c.api, id, w)
		if rpcErr, ok := tgerr.As(err); ok && rpcErr.IsType("FILE_MIGRATE") && c.cfg.dialDC != nil {
			invoker, dialErr := c.cfg.dialDC(ctx, rpcErr.Argument)
			if dialErr != nil {
				return fmt.Errorf("dial dc %d: %w", rpcErr.Argument, dialErr)
			}
			return c.download(ctx, tg.NewClient(invoker), id, w)
		}
		return err
	})
}

func (c *Client) download(ctx context.Context, api *tg.Client, id codec.FileID, w io.Writer) error {
	if _, err := downloader.NewDownloader().Download(api, id.Location).Stream(ctx, w); err != nil {
		return fmt.Errorf("download %s: %w", id.Kind, err)
	}

	return nil
}

// GetUserProfilePhotos lists profile pictures of a user.
func (c *Client) GetUserProfilePhotos(
	ctx context.Context,
	params botapi.GetUserProfilePhotosParams,
) (botapi.UserProfilePhotos, error) {
	const method = "getUserProfilePhotos"
	if err := params.Validate(); err != nil {
		return botapi.UserProfilePhotos{}, fmt.Errorf("get user profile photos validate: %w", err)
	}

	limit := params.Limit
	if limit == 0 {
		limit = 100
	}

	var result botapi.UserProfilePhotos
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		user, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}
		photos, err := c.api.PhotosGetUserPhotos(ctx, &tg.PhotosGetUserPhotosRequest{
			UserID: user,
			Offset: params.Offset,
			Limit:  limit,
		})
		if err != nil {
			return fmt.Errorf("get user photos: %w", err)
		}

		var list []tg.PhotoClass
		switch typed := photos.(type) {
		case *tg.PhotosPhotos:
			list = typed.Photos
			result.TotalCount = len(typed.Photos)
		case *tg.PhotosPhotosSlice:
			list = typed.Photos
			result.TotalCount = typed.Count
		}
		result.Photos = make([][]botapi.PhotoSize, 0, len(list))
		for _, photo := range list {
			if typed, ok := photo.(*tg.Photo); ok {
				result.Photos = append(result.Photos, mapper.PhotoSizes(typed))
			}
		}
		return nil
	})

	return result, err
}
